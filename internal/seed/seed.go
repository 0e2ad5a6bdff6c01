package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/db/models"
	dbtypes "github.com/Richyi/promosophia/pkg/db/types"
	"github.com/Richyi/promosophia/pkg/enums"
	"github.com/Richyi/promosophia/pkg/logger"
)

// posRandSeed keeps the synthetic POS history reproducible across runs.
const posRandSeed = 42

const demoTenantDomain = "cpg-corp.com"

// Seeder loads the demo dataset: one CPG tenant with users, catalog,
// promotions, deductions, goals, and a month of POS history.
type Seeder struct {
	db   *gorm.DB
	logg *logger.Logger
}

// New builds a seeder. Both dependencies are required.
func New(db *gorm.DB, logg *logger.Logger) (*Seeder, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Seeder{db: db, logg: logg}, nil
}

// Run loads the fixture set inside one transaction. It is idempotent: when the
// demo tenant already exists the load is skipped.
func (s *Seeder) Run(ctx context.Context) error {
	var existing models.Tenant
	err := s.db.WithContext(ctx).Where("domain = ?", demoTenantDomain).First(&existing).Error
	if err == nil {
		s.logg.Info(ctx, "demo tenant already present, skipping seed")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking for demo tenant: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant, err := seedTenant(tx)
		if err != nil {
			return err
		}
		users, err := seedUsers(tx, tenant)
		if err != nil {
			return err
		}
		products, err := seedCatalog(tx, tenant)
		if err != nil {
			return err
		}
		retailers, err := seedRetailers(tx, tenant)
		if err != nil {
			return err
		}
		promotions, err := seedPromotions(tx, tenant, users, products, retailers)
		if err != nil {
			return err
		}
		if err := seedDeductions(tx, tenant, users, retailers, promotions); err != nil {
			return err
		}
		if err := seedGoals(tx, tenant); err != nil {
			return err
		}
		return seedPOSData(tx, tenant, products, retailers)
	})
	if err != nil {
		return err
	}

	s.logg.Info(ctx, "demo dataset seeded")
	return nil
}

func seedTenant(tx *gorm.DB) (*models.Tenant, error) {
	domain := demoTenantDomain
	tenant := &models.Tenant{
		Name:     "CPG Corporation",
		Domain:   &domain,
		Industry: "Consumer Packaged Goods",
		Size:     "Enterprise",
	}
	if err := tx.Create(tenant).Error; err != nil {
		return nil, fmt.Errorf("seed tenant: %w", err)
	}
	settings := &models.TenantSettings{
		TenantID:        tenant.ID,
		Currency:        "USD",
		FiscalYearStart: 0,
		DefaultMargin:   0.35,
		Timezone:        "America/New_York",
	}
	if err := tx.Create(settings).Error; err != nil {
		return nil, fmt.Errorf("seed tenant settings: %w", err)
	}
	tenant.Settings = settings
	return tenant, nil
}

func seedUsers(tx *gorm.DB, tenant *models.Tenant) ([]models.User, error) {
	users := []models.User{
		{TenantID: tenant.ID, Name: "Sarah Chen", Email: "s.chen@cpg-corp.com", Role: enums.UserRoleTenantAdmin, IsActive: true},
		{TenantID: tenant.ID, Name: "Mike Johnson", Email: "m.johnson@cpg-corp.com", Role: enums.UserRoleExecutive, IsActive: true},
		{TenantID: tenant.ID, Name: "Lisa Rodriguez", Email: "l.rodriguez@cpg-corp.com", Role: enums.UserRoleFinance, IsActive: true},
		{TenantID: tenant.ID, Name: "David Kim", Email: "d.kim@cpg-corp.com", Role: enums.UserRoleAccountManager, IsActive: true},
	}
	var errs error
	for i := range users {
		errs = multierr.Append(errs, tx.Create(&users[i]).Error)
	}
	if errs != nil {
		return nil, fmt.Errorf("seed users: %w", errs)
	}
	return users, nil
}

func seedCatalog(tx *gorm.DB, tenant *models.Tenant) ([]models.Product, error) {
	categories := []models.ProductCategory{
		{TenantID: tenant.ID, Name: "Coffee", IsActive: true},
		{TenantID: tenant.ID, Name: "Dairy Alternatives", IsActive: true},
		{TenantID: tenant.ID, Name: "Add-ons", IsActive: true},
	}
	var errs error
	for i := range categories {
		errs = multierr.Append(errs, tx.Create(&categories[i]).Error)
	}
	if errs != nil {
		return nil, fmt.Errorf("seed categories: %w", errs)
	}

	products := []models.Product{
		{
			TenantID: tenant.ID, CategoryID: categories[0].ID,
			Name: "Premium Espresso 250g", SKU: "COF-PRE-250",
			BasePrice: decimal.NewFromFloat(8.50), Cost: decimal.NewFromFloat(4.25),
			Margin: 0.50, Unit: "units", IsActive: true,
		},
		{
			TenantID: tenant.ID, CategoryID: categories[0].ID,
			Name: "Classic Roast 500g", SKU: "COF-CLS-500",
			BasePrice: decimal.NewFromFloat(12.00), Cost: decimal.NewFromFloat(7.20),
			Margin: 0.40, Unit: "units", IsActive: true,
		},
		{
			TenantID: tenant.ID, CategoryID: categories[1].ID,
			Name: "Oat Milk Barista 1L", SKU: "DAI-OAT-1L",
			BasePrice: decimal.NewFromFloat(3.20), Cost: decimal.NewFromFloat(2.11),
			Margin: 0.34, Unit: "liters", IsActive: true,
		},
		{
			TenantID: tenant.ID, CategoryID: categories[2].ID,
			Name: "Caramel Syrup 500ml", SKU: "ADD-CAR-500",
			BasePrice: decimal.NewFromFloat(5.50), Cost: decimal.NewFromFloat(2.75),
			Margin: 0.50, Unit: "bottles", IsActive: true,
		},
	}
	for i := range products {
		errs = multierr.Append(errs, tx.Create(&products[i]).Error)
	}
	if errs != nil {
		return nil, fmt.Errorf("seed products: %w", errs)
	}
	return products, nil
}

func seedRetailers(tx *gorm.DB, tenant *models.Tenant) ([]models.Retailer, error) {
	email := func(addr string) *string { return &addr }
	retailers := []models.Retailer{
		{
			TenantID: tenant.ID, Name: "Whole Foods Market", Code: "WFM001",
			Region: "National", Channel: "Natural", Tier: enums.RetailerTierA,
			ContactEmail: email("promotions@wholefoods.com"), IsActive: true,
		},
		{
			TenantID: tenant.ID, Name: "Kroger", Code: "KRO001",
			Region: "Midwest", Channel: "Grocery", Tier: enums.RetailerTierA,
			ContactEmail: email("trade@kroger.com"), IsActive: true,
		},
		{
			TenantID: tenant.ID, Name: "Costco", Code: "COS001",
			Region: "West", Channel: "Club", Tier: enums.RetailerTierA,
			ContactEmail: email("merchandise@costco.com"), IsActive: true,
		},
		{
			TenantID: tenant.ID, Name: "Target", Code: "TAR001",
			Region: "East", Channel: "Mass", Tier: enums.RetailerTierB,
			ContactEmail: email("vendor.services@target.com"), IsActive: true,
		},
	}
	var errs error
	for i := range retailers {
		errs = multierr.Append(errs, tx.Create(&retailers[i]).Error)
	}
	if errs != nil {
		return nil, fmt.Errorf("seed retailers: %w", errs)
	}
	return retailers, nil
}

func seedPromotions(tx *gorm.DB, tenant *models.Tenant, users []models.User, products []models.Product, retailers []models.Retailer) ([]models.TradePromotion, error) {
	date := func(value string) time.Time {
		t, _ := time.Parse("2006-01-02", value)
		return t
	}
	str := func(v string) *string { return &v }
	f64 := func(v float64) *float64 { return &v }
	i64 := func(v int64) *int64 { return &v }
	i := func(v int) *int { return &v }
	dec := func(v float64) *decimal.Decimal {
		d := decimal.NewFromFloat(v)
		return &d
	}
	approvedAt1 := date("2024-11-15")
	approvedAt3 := date("2024-11-10")

	promotions := []models.TradePromotion{
		{
			TenantID: tenant.ID, RetailerID: retailers[0].ID,
			Name:        "Coffee Month Special",
			Description: str("December coffee promotion with 15% off TPR"),
			Status:      enums.PromotionStatusActive,
			ProductIDs:  dbtypes.UUIDArray{products[0].ID},
			StartDate:   date("2024-12-01"), EndDate: date("2024-12-31"),
			MechanicType:        enums.MechanicTPR,
			MechanicDescription: "15% Off Temporary Price Reduction",
			DiscountDepth:       0.15,
			PlannedSpend:        decimal.NewFromInt(25000), ActualSpend: dec(24200),
			PlannedVolume: 5000, ActualVolume: i64(5200),
			PlannedRevenue: decimal.NewFromInt(42500), ActualRevenue: dec(44200),
			PlannedMargin: 0.45, ActualMargin: f64(0.47),
			ROI: f64(1.83), LiftPercent: f64(24),
			CreatedBy: users[0].ID, ApprovedBy: &users[1].ID, ApprovedAt: &approvedAt1,
		},
		{
			TenantID: tenant.ID, RetailerID: retailers[1].ID,
			Name:        "Q4 Barista Bundle",
			Description: str("Bundle promotion for coffee and dairy alternatives"),
			Status:      enums.PromotionStatusPlanned,
			ProductIDs:  dbtypes.UUIDArray{products[2].ID},
			StartDate:   date("2025-01-15"), EndDate: date("2025-02-15"),
			MechanicType:        enums.MechanicBundle,
			MechanicDescription: "Buy 2 Get 1 Free on barista items",
			BuyQuantity:         i(2), GetQuantity: i(1),
			DiscountDepth: 0.33,
			PlannedSpend:  decimal.NewFromInt(45000),
			PlannedVolume: 12000,
			PlannedRevenue: decimal.NewFromInt(38400),
			PlannedMargin:  0.42,
			ROI:            f64(1.15), LiftPercent: f64(45),
			CreatedBy: users[3].ID,
		},
		{
			TenantID: tenant.ID, RetailerID: retailers[2].ID,
			Name:        "Holiday Gifting Boost",
			Description: str("Seasonal promotion for gift items"),
			Status:      enums.PromotionStatusCompleted,
			ProductIDs:  dbtypes.UUIDArray{products[3].ID},
			StartDate:   date("2024-11-20"), EndDate: date("2024-12-25"),
			MechanicType:        enums.MechanicDisplay,
			MechanicDescription: "Display placement + $1 off promotion",
			DiscountDepth:       0.18,
			PlannedSpend:        decimal.NewFromInt(15000), ActualSpend: dec(15200),
			PlannedVolume: 3000, ActualVolume: i64(2850),
			PlannedRevenue: decimal.NewFromInt(16500), ActualRevenue: dec(15675),
			PlannedMargin: 0.48, ActualMargin: f64(0.46),
			ROI: f64(1.03), LiftPercent: f64(12),
			CreatedBy: users[0].ID, ApprovedBy: &users[1].ID, ApprovedAt: &approvedAt3,
		},
	}
	var errs error
	for idx := range promotions {
		errs = multierr.Append(errs, tx.Create(&promotions[idx]).Error)
	}
	if errs != nil {
		return nil, fmt.Errorf("seed promotions: %w", errs)
	}
	return promotions, nil
}

func seedDeductions(tx *gorm.DB, tenant *models.Tenant, users []models.User, retailers []models.Retailer, promotions []models.TradePromotion) error {
	date := func(value string) time.Time {
		t, _ := time.Parse("2006-01-02", value)
		return t
	}
	resolvedAt := date("2024-12-01")

	deductions := []models.Deduction{
		{
			TenantID: tenant.ID, RetailerID: retailers[0].ID, PromotionID: &promotions[0].ID,
			Amount: decimal.NewFromFloat(450.00), Status: enums.DeductionStatusOpen,
			Type: "Shortage", Reason: "Inventory shortage at store #1234",
			Date: date("2024-12-10"),
		},
		{
			TenantID: tenant.ID, RetailerID: retailers[1].ID,
			Amount: decimal.NewFromFloat(1250.00), Status: enums.DeductionStatusPending,
			Type: "Trade Discount", Reason: "Additional trade discount applied",
			Date: date("2024-12-05"),
		},
		{
			TenantID: tenant.ID, RetailerID: retailers[2].ID,
			Amount: decimal.NewFromFloat(230.50), Status: enums.DeductionStatusCleared,
			Type: "Damaged Goods", Reason: "Product damaged in transit",
			Date: date("2024-11-28"), ResolvedAt: &resolvedAt, ResolvedBy: &users[2].ID,
		},
	}
	var errs error
	for i := range deductions {
		errs = multierr.Append(errs, tx.Create(&deductions[i]).Error)
	}
	if errs != nil {
		return fmt.Errorf("seed deductions: %w", errs)
	}
	return nil
}

func seedGoals(tx *gorm.DB, tenant *models.Tenant) error {
	goals := []models.CompanyGoal{
		{TenantID: tenant.ID, Type: enums.GoalRevenue, Target: 5000000, Current: 3250000, Period: "FY2025"},
		{TenantID: tenant.ID, Type: enums.GoalVolume, Target: 1000000, Current: 650000, Period: "FY2025"},
		{TenantID: tenant.ID, Type: enums.GoalMargin, Target: 0.42, Current: 0.39, Period: "FY2025"},
	}
	var errs error
	for i := range goals {
		errs = multierr.Append(errs, tx.Create(&goals[i]).Error)
	}
	if errs != nil {
		return fmt.Errorf("seed goals: %w", errs)
	}
	return nil
}

func seedPOSData(tx *gorm.DB, tenant *models.Tenant, products []models.Product, retailers []models.Retailer) error {
	rng := rand.New(rand.NewSource(posRandSeed))
	today := time.Now().UTC().Truncate(24 * time.Hour)

	rows := make([]models.POSData, 0, 30)
	for i := 0; i < 30; i++ {
		rows = append(rows, models.POSData{
			TenantID:        tenant.ID,
			RetailerID:      retailers[rng.Intn(len(retailers))].ID,
			ProductID:       products[rng.Intn(len(products))].ID,
			Date:            today.AddDate(0, 0, -i),
			BaselineSales:   int64(rng.Intn(1000) + 500),
			PromotedSales:   int64(rng.Intn(1500) + 800),
			BaselineRevenue: decimal.NewFromInt(int64(rng.Intn(5000) + 2000)),
			PromotedRevenue: decimal.NewFromInt(int64(rng.Intn(8000) + 3000)),
			Units:           int64(rng.Intn(200) + 50),
			Price:           decimal.NewFromFloat(rng.Float64()*10 + 5).Round(2),
			IsPromotion:     rng.Float64() > 0.7,
		})
	}
	if err := tx.CreateInBatches(rows, 100).Error; err != nil {
		return fmt.Errorf("seed pos data: %w", err)
	}
	return nil
}
