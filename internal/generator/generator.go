package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jmsilva/teller/internal/domain"
)

// Dataset contains the generated load-file lines: account-open lines in the
// batch loader's comma-separated format and D/W activity lines against the
// account numbers those lines produce.
type Dataset struct {
	Accounts   []string
	Activities []string
}

// Generator produces synthetic load files. Account numbers in the activity
// lines match what the batch loader assigns when the accounts file is loaded
// into a store seeded with the same serial seed, because serials are drawn in
// line order from an identically seeded source.
type Generator struct {
	cfg     Config
	rand    *rand.Rand
	serials *domain.SerialSource
	holders []domain.Profile
	numbers []string
}

var firstNames = []string{
	"John", "Jane", "Kate", "Roy", "April", "Amy", "Zoe", "Carl",
	"Nina", "Omar", "Priya", "Leo", "Mara", "Sam", "Tess", "Ivan",
}

var lastNames = []string{
	"Doe", "Lindsey", "Brooks", "March", "Abbot", "Young", "Stark",
	"Patel", "Reyes", "Novak", "Kim", "Okafor", "Silva", "Hale",
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumAccounts <= 0 {
		cfg.NumAccounts = def.NumAccounts
	}
	if cfg.NumActivities <= 0 {
		cfg.NumActivities = def.NumActivities
	}
	if cfg.SharedHolderChance <= 0 {
		cfg.SharedHolderChance = def.SharedHolderChance
	}
	if cfg.BadNumberChance < 0 {
		cfg.BadNumberChance = 0
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.SerialSeed == 0 {
		cfg.SerialSeed = def.SerialSeed
	}

	return &Generator{
		cfg:     cfg,
		rand:    rand.New(rand.NewSource(cfg.Seed)),
		serials: domain.NewSerialSource(cfg.SerialSeed),
	}
}

// Generate synthesises the dataset. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	accounts := make([]string, 0, g.cfg.NumAccounts)
	for i := 0; i < g.cfg.NumAccounts; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		accounts = append(accounts, g.accountLine())
	}

	activities := make([]string, 0, g.cfg.NumActivities)
	for i := 0; i < g.cfg.NumActivities; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		activities = append(activities, g.activityLine())
	}

	return Dataset{Accounts: accounts, Activities: activities}, nil
}

func (g *Generator) accountLine() string {
	branch := g.randomBranch()
	kinds := []string{"checking", "savings", "moneymarket", "college", "certificate"}
	kind := kinds[g.rand.Intn(len(kinds))]

	var holder domain.Profile
	// College holders must be under 24, so they never come from the shared
	// pool of adult holders.
	if kind != "college" && len(g.holders) > 0 && g.rand.Float64() < g.cfg.SharedHolderChance {
		holder = g.holders[g.rand.Intn(len(g.holders))]
	} else {
		holder = g.randomHolder(kind == "college")
		if kind != "college" {
			g.holders = append(g.holders, holder)
		}
	}

	var accountType domain.AccountType
	var amount float64
	suffix := ""
	switch kind {
	case "checking":
		accountType = domain.Checking
		amount = g.randomAmount(50, 5000)
	case "savings":
		accountType = domain.Savings
		amount = g.randomAmount(50, 5000)
	case "moneymarket":
		accountType = domain.MoneyMarket
		amount = g.randomAmount(2000, 12000)
	case "college":
		accountType = domain.CollegeChecking
		amount = g.randomAmount(20, 2000)
		suffix = fmt.Sprintf(",%d", 1+g.rand.Intn(3))
	case "certificate":
		accountType = domain.CertificateDeposit
		amount = g.randomAmount(1000, 20000)
		term := domain.CDTerms[g.rand.Intn(len(domain.CDTerms))]
		suffix = fmt.Sprintf(",%d,%s", term, g.randomDate(2023, 2024))
	}

	number := domain.NewAccountNumber(branch, accountType, g.serials)
	g.numbers = append(g.numbers, number.String())

	return fmt.Sprintf("%s,%s,%s,%s,%s,%.2f%s",
		kind, branch, holder.FirstName, holder.LastName, holder.DOB, amount, suffix)
}

func (g *Generator) activityLine() string {
	kind := "D"
	if g.rand.Float64() < 0.5 {
		kind = "W"
	}

	number := g.numbers[g.rand.Intn(len(g.numbers))]
	if g.rand.Float64() < g.cfg.BadNumberChance {
		number = "999090000"
	}

	return fmt.Sprintf("%s,%s,%s,%s,%.2f",
		kind, number, g.randomDate(2024, 2025), g.randomBranch(), g.randomAmount(5, 800))
}

func (g *Generator) randomHolder(student bool) domain.Profile {
	minYear, maxYear := 1950, 2002
	if student {
		// 19 to 22 years old relative to the generation year.
		year := time.Now().Year()
		minYear, maxYear = year-22, year-19
	}
	return domain.Profile{
		FirstName: firstNames[g.rand.Intn(len(firstNames))],
		LastName:  lastNames[g.rand.Intn(len(lastNames))],
		DOB:       g.randomDateBetween(minYear, maxYear),
	}
}

func (g *Generator) randomBranch() domain.Branch {
	branches := domain.Branches()
	return branches[g.rand.Intn(len(branches))]
}

func (g *Generator) randomAmount(low, high float64) float64 {
	return low + g.rand.Float64()*(high-low)
}

func (g *Generator) randomDate(minYear, maxYear int) domain.Date {
	return g.randomDateBetween(minYear, maxYear)
}

func (g *Generator) randomDateBetween(minYear, maxYear int) domain.Date {
	year := minYear + g.rand.Intn(maxYear-minYear+1)
	month := 1 + g.rand.Intn(12)
	day := 1 + g.rand.Intn(domain.DaysIn(month, year))
	return domain.Date{Year: year, Month: month, Day: day}
}
