package ledger_test

import (
	"sync"

	"github.com/fintrack/backend/internal/ledger"
	"github.com/fintrack/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestScenarios() {
	account := suite.createAccount(suite.owner, "0")
	suite.assertBalance(account, "0")

	// Scenario A
	income := suite.createTransaction(account, models.KindIncome, "100", "2024-01-10")
	suite.assertBalance(account, "100")

	expense := suite.createTransaction(account, models.KindExpense, "30", "2024-01-11")
	suite.assertBalance(account, "70")

	// Scenario B
	_, err := suite.engine.Update(suite.ctx, suite.owner, expense.ID, []string{"Amount"}, models.Transaction{Amount: decimal.NewFromInt(50)})
	suite.Require().Nil(err)
	suite.assertBalance(account, "50")

	// Scenario C
	suite.Require().Nil(suite.engine.Delete(suite.ctx, suite.owner, income.ID))
	suite.assertBalance(account, "-50")
}

func (suite *TestSuiteStandard) TestCreateEnriched() {
	account := suite.createAccount(suite.owner, "10")
	category := suite.createCategory(suite.owner, "Coffee")

	input := transaction(account.ID, models.KindExpense, "3.50", "2024-02-01")
	input.CategoryID = &category.ID

	row, err := suite.engine.Create(suite.ctx, suite.owner, input)
	suite.Require().Nil(err)

	suite.Assert().Equal("Checking", row.AccountName)
	suite.Require().NotNil(row.CategoryName)
	suite.Assert().Equal("Coffee", *row.CategoryName)
	suite.Assert().Equal(suite.owner, row.OwnerID)
	suite.assertBalance(account, "6.50")
}

func (suite *TestSuiteStandard) TestCreateErrors() {
	account := suite.createAccount(suite.owner, "0")
	foreign := suite.createAccount(uuid.New(), "0")
	foreignCategory := suite.createCategory(uuid.New(), "Not mine")
	missing := uuid.New()

	inactive := suite.createAccount(suite.owner, "0")
	suite.Require().Nil(suite.db.Model(&inactive).Select("Active").Updates(models.Account{Active: false}).Error)

	tests := []struct {
		name   string
		modify func(*models.Transaction)
		err    error
	}{
		{"Zero amount", func(t *models.Transaction) { t.Amount = decimal.Zero }, models.ErrAmountNotPositive},
		{"Negative amount", func(t *models.Transaction) { t.Amount = decimal.NewFromInt(-3) }, models.ErrAmountNotPositive},
		{"Invalid kind", func(t *models.Transaction) { t.Kind = "refund" }, models.ErrTransactionKindInvalid},
		{"Foreign account", func(t *models.Transaction) { t.AccountID = foreign.ID }, models.ErrResourceNotFound},
		{"Inactive account", func(t *models.Transaction) { t.AccountID = inactive.ID }, models.ErrAccountInactive},
		{"Missing category", func(t *models.Transaction) { t.CategoryID = &missing }, models.ErrResourceNotFound},
		{"Foreign category", func(t *models.Transaction) { t.CategoryID = &foreignCategory.ID }, models.ErrResourceNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			input := transaction(account.ID, models.KindIncome, "10", "2024-01-01")
			tt.modify(&input)

			_, err := suite.engine.Create(suite.ctx, suite.owner, input)
			suite.Assert().ErrorIs(err, tt.err)
		})
	}

	suite.assertBalance(account, "0")
	suite.assertBalance(inactive, "0")

	var count int64
	suite.Require().Nil(suite.db.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count, "failed creates must not persist transactions")
}

func (suite *TestSuiteStandard) TestCreateDefaultCategory() {
	account := suite.createAccount(suite.owner, "0")

	var salary models.Category
	suite.Require().Nil(suite.db.First(&salary, "name = ?", "Salary").Error)

	input := transaction(account.ID, models.KindIncome, "1000", "2024-01-01")
	input.CategoryID = &salary.ID

	row, err := suite.engine.Create(suite.ctx, suite.owner, input)
	suite.Require().Nil(err)
	suite.Assert().Equal("Salary", *row.CategoryName)
}

func (suite *TestSuiteStandard) TestCreateMatchRules() {
	account := suite.createAccount(suite.owner, "0")
	coffee := suite.createCategory(suite.owner, "Coffee")
	explicit := suite.createCategory(suite.owner, "Explicit")

	suite.Require().Nil(suite.db.Create(&models.MatchRule{OwnerID: suite.owner, Match: "*coffee*", CategoryID: coffee.ID}).Error)

	input := transaction(account.ID, models.KindExpense, "4", "2024-01-01")
	input.Description = "Morning Coffee"
	row, err := suite.engine.Create(suite.ctx, suite.owner, input)
	suite.Require().Nil(err)
	suite.Require().NotNil(row.CategoryID)
	suite.Assert().Equal(coffee.ID, *row.CategoryID)

	// An explicit category wins over match rules
	input.CategoryID = &explicit.ID
	row, err = suite.engine.Create(suite.ctx, suite.owner, input)
	suite.Require().Nil(err)
	suite.Assert().Equal(explicit.ID, *row.CategoryID)

	// Rules of other owners are not applied
	other := suite.createAccount(uuid.New(), "0")
	input = transaction(other.ID, models.KindExpense, "4", "2024-01-01")
	input.Description = "Evening coffee"
	row, err = suite.engine.Create(suite.ctx, other.OwnerID, input)
	suite.Require().Nil(err)
	suite.Assert().Nil(row.CategoryID)
}

func (suite *TestSuiteStandard) TestUpdateKindFlip() {
	account := suite.createAccount(suite.owner, "100")
	expense := suite.createTransaction(account, models.KindExpense, "40", "2024-01-01")
	suite.assertBalance(account, "60")

	row, err := suite.engine.Update(suite.ctx, suite.owner, expense.ID, []string{"Kind"}, models.Transaction{Kind: models.KindIncome})
	suite.Require().Nil(err)
	suite.Assert().Equal(models.KindIncome, row.Kind)
	suite.assertBalance(account, "140")

	// Updating without any change keeps the balance
	_, err = suite.engine.Update(suite.ctx, suite.owner, expense.ID, []string{}, models.Transaction{})
	suite.Require().Nil(err)
	suite.assertBalance(account, "140")
}

func (suite *TestSuiteStandard) TestUpdateMoveAccount() {
	from := suite.createAccount(suite.owner, "100")
	to := suite.createAccount(suite.owner, "0")
	expense := suite.createTransaction(from, models.KindExpense, "25", "2024-01-01")

	row, err := suite.engine.Update(suite.ctx, suite.owner, expense.ID, []string{"AccountID", "Amount"}, models.Transaction{AccountID: to.ID, Amount: decimal.NewFromInt(20)})
	suite.Require().Nil(err)
	suite.Assert().Equal(to.ID, row.AccountID)

	suite.assertBalance(from, "100")
	suite.assertBalance(to, "-20")
}

func (suite *TestSuiteStandard) TestUpdateErrorsRollBack() {
	account := suite.createAccount(suite.owner, "0")
	foreign := suite.createAccount(uuid.New(), "0")
	income := suite.createTransaction(account, models.KindIncome, "80", "2024-01-01")

	tests := []struct {
		name   string
		fields []string
		update models.Transaction
		err    error
	}{
		{"Zero amount", []string{"Amount"}, models.Transaction{Amount: decimal.Zero}, models.ErrAmountNotPositive},
		{"Foreign account", []string{"AccountID"}, models.Transaction{AccountID: foreign.ID}, models.ErrResourceNotFound},
		{"Empty description", []string{"Description"}, models.Transaction{Description: ""}, models.ErrDescriptionLength},
		{"Unknown field", []string{"OwnerID"}, models.Transaction{OwnerID: uuid.New()}, ledger.ErrFieldNotUpdatable},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.engine.Update(suite.ctx, suite.owner, income.ID, tt.fields, tt.update)
			suite.Assert().ErrorIs(err, tt.err)
			suite.assertBalance(account, "80")
		})
	}

	row, err := suite.engine.Get(suite.ctx, suite.owner, income.ID)
	suite.Require().Nil(err)
	suite.Assert().True(row.Amount.Equal(decimal.NewFromInt(80)))
}

func (suite *TestSuiteStandard) TestInactiveAccountFrozen() {
	account := suite.createAccount(suite.owner, "0")
	income := suite.createTransaction(account, models.KindIncome, "15", "2024-01-01")
	suite.Require().Nil(suite.db.Model(&account).Select("Active").Updates(models.Account{Active: false}).Error)

	_, err := suite.engine.Update(suite.ctx, suite.owner, income.ID, []string{"Amount"}, models.Transaction{Amount: decimal.NewFromInt(5)})
	suite.Assert().ErrorIs(err, models.ErrAccountInactive)

	err = suite.engine.Delete(suite.ctx, suite.owner, income.ID)
	suite.Assert().ErrorIs(err, models.ErrAccountInactive)

	suite.assertBalance(account, "15")
}

func (suite *TestSuiteStandard) TestForeignOwnerNotFound() {
	account := suite.createAccount(suite.owner, "0")
	income := suite.createTransaction(account, models.KindIncome, "15", "2024-01-01")
	stranger := uuid.New()

	_, err := suite.engine.Get(suite.ctx, stranger, income.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no transaction matching your query", err.Error())

	_, err = suite.engine.Update(suite.ctx, stranger, income.ID, []string{"Amount"}, models.Transaction{Amount: decimal.NewFromInt(1)})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	err = suite.engine.Delete(suite.ctx, stranger, income.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	page, err := suite.engine.List(suite.ctx, stranger, ledger.Filter{})
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(0), page.Total)

	suite.assertBalance(account, "15")
}

func (suite *TestSuiteStandard) TestDeleteRecreateRestoresBalance() {
	account := suite.createAccount(suite.owner, "12.34")
	suite.createTransaction(account, models.KindIncome, "100.01", "2024-01-01")
	expense := suite.createTransaction(account, models.KindExpense, "33.33", "2024-01-02")
	before := suite.balance(account)

	suite.Require().Nil(suite.engine.Delete(suite.ctx, suite.owner, expense.ID))
	suite.createTransaction(account, models.KindExpense, "33.33", "2024-01-02")

	suite.Assert().True(before.Equal(suite.balance(account)))
	suite.assertBalance(account, "79.02")
}

func (suite *TestSuiteStandard) TestMixedSequenceInvariant() {
	checking := suite.createAccount(suite.owner, "500")
	savings := suite.createAccount(suite.owner, "0")

	a := suite.createTransaction(checking, models.KindExpense, "19.99", "2024-03-01")
	b := suite.createTransaction(checking, models.KindIncome, "0.01", "2024-03-02")
	c := suite.createTransaction(savings, models.KindIncome, "250", "2024-03-03")

	_, err := suite.engine.Update(suite.ctx, suite.owner, a.ID, []string{"AccountID", "Kind"}, models.Transaction{AccountID: savings.ID, Kind: models.KindIncome})
	suite.Require().Nil(err)

	_, err = suite.engine.Update(suite.ctx, suite.owner, c.ID, []string{"Amount"}, models.Transaction{Amount: decimal.RequireFromString("249.99")})
	suite.Require().Nil(err)

	suite.Require().Nil(suite.engine.Delete(suite.ctx, suite.owner, b.ID))
	suite.createTransaction(checking, models.KindExpense, "0.10", "2024-03-04")

	suite.assertBalance(checking, "499.90")
	suite.assertBalance(savings, "269.98")
}

func (suite *TestSuiteStandard) TestConcurrentCreates() {
	account := suite.createAccount(suite.owner, "0")

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.engine.Create(suite.ctx, suite.owner, transaction(account.ID, models.KindIncome, "1.50", "2024-01-01"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		suite.Assert().Nil(err)
	}

	suite.assertBalance(account, "30")
}

// bumpVersion registers a callback that changes the version of all accounts
// before the first times balance updates are executed.
func (suite *TestSuiteStandard) bumpVersion(times int) *int {
	calls := 0
	err := suite.db.Callback().Update().Before("gorm:update").Register("test:bump_version", func(db *gorm.DB) {
		if db.Statement.Table != "accounts" {
			return
		}

		calls++
		if calls <= times {
			db.Session(&gorm.Session{NewDB: true}).Exec("UPDATE accounts SET version = version + 1")
		}
	})
	suite.Require().Nil(err)
	return &calls
}

func (suite *TestSuiteStandard) TestConflictRetried() {
	account := suite.createAccount(suite.owner, "0")
	calls := suite.bumpVersion(1)

	_, err := suite.engine.Create(suite.ctx, suite.owner, transaction(account.ID, models.KindIncome, "10", "2024-01-01"))
	suite.Require().Nil(err)
	suite.Assert().Equal(2, *calls, "the balance update must be attempted twice")

	suite.assertBalance(account, "10")
}

func (suite *TestSuiteStandard) TestConflictSurfaces() {
	account := suite.createAccount(suite.owner, "0")
	suite.bumpVersion(1000)

	_, err := suite.engine.Create(suite.ctx, suite.owner, transaction(account.ID, models.KindIncome, "10", "2024-01-01"))
	suite.Assert().ErrorIs(err, models.ErrConflict)

	var count int64
	suite.Require().Nil(suite.db.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count, "the transaction must be rolled back")
	suite.assertBalance(account, "0")
}

func (suite *TestSuiteStandard) TestClosedDatabase() {
	account := suite.createAccount(suite.owner, "0")
	suite.CloseDB()

	_, err := suite.engine.Create(suite.ctx, suite.owner, transaction(account.ID, models.KindIncome, "10", "2024-01-01"))
	suite.Assert().ErrorIs(err, models.ErrGeneral)

	_, err = suite.engine.List(suite.ctx, suite.owner, ledger.Filter{})
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
