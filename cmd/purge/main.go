// The purge tool is the only place hard deletes live. It talks to the
// database directly and is never reachable from the HTTP surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/UnknownOlympus/chronos/internal/config"
	"github.com/UnknownOlympus/chronos/internal/models"
	"github.com/UnknownOlympus/chronos/internal/repository"
)

func main() {
	list := flag.Bool("list", false, "list every employee and exit")
	employeeID := flag.String("employee-id", "", "purge the employee with this id")
	username := flag.String("username", "", "purge the employee behind this account username")
	inactive := flag.Bool("inactive", false, "purge every employee with a deactivated account")
	department := flag.String("department", "", "purge every employee of this department")
	deactivate := flag.Bool("deactivate", false, "with -employee-id: deactivate the account instead of deleting")
	flag.Parse()

	cfg := config.MustLoad()

	dtb, err := repository.NewDatabase(
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	repo := repository.NewRepository(dtb)
	ctx := context.Background()

	switch {
	case *list:
		err = listEmployees(ctx, repo)
	case *employeeID != "" && *deactivate:
		err = deactivateEmployee(ctx, repo, *employeeID)
	case *employeeID != "":
		err = purgeOneBy(ctx, repo, repo.GetEmployeeByCode, *employeeID)
	case *username != "":
		err = purgeOneBy(ctx, repo, repo.GetEmployeeByUsername, *username)
	case *inactive:
		err = purgeBatch(ctx, repo, repo.ListInactiveEmployees)
	case *department != "":
		if !models.IsValidDepartment(*department) {
			log.Fatalf("Unknown department: %s", *department)
		}
		err = purgeBatch(ctx, repo, func(ctx context.Context) ([]models.Employee, error) {
			return repo.ListEmployeesByDepartment(ctx, *department)
		})
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("Purge failed: %v", err)
	}
}

// listEmployees prints the whole directory so an operator can verify
// identifiers before purging anything.
func listEmployees(ctx context.Context, repo *repository.Repository) error {
	employees, err := repo.ListAllEmployees(ctx)
	if err != nil {
		return err
	}

	fmt.Println("=== CURRENT EMPLOYEES IN DATABASE ===")
	for _, emp := range employees {
		status := "ACTIVE"
		if !emp.IsActive {
			status = "INACTIVE"
		}
		fmt.Printf("ID: %s | Name: %s | Department: %s | Status: %s\n",
			emp.EmployeeID, emp.FullName, emp.Department, status)
	}
	fmt.Printf("\nTotal: %d\n", len(employees))

	return nil
}

// deactivateEmployee revokes access but keeps every row in place.
func deactivateEmployee(ctx context.Context, repo *repository.Repository, code string) error {
	if err := repo.SetAccountActive(ctx, code, false); err != nil {
		return err
	}

	fmt.Printf("✓ Deactivated %s\n", code)
	fmt.Println("  Data is preserved but the account cannot log in.")

	return nil
}

// purgeOneBy resolves a single employee through the given lookup and
// irreversibly deletes all of their data.
func purgeOneBy(
	ctx context.Context,
	repo *repository.Repository,
	lookup func(context.Context, string) (models.Employee, error),
	key string,
) error {
	emp, err := lookup(ctx, key)
	if err != nil {
		return err
	}

	result, err := repo.HardDeleteEmployee(ctx, emp)
	if err != nil {
		return err
	}

	printDeleted(emp, result)

	return nil
}

// purgeBatch deletes every employee the lister returns, one transaction
// each. A failed record is reported and the batch moves on, so a partial run
// leaves the remaining employees untouched but accounted for.
func purgeBatch(
	ctx context.Context,
	repo *repository.Repository,
	list func(context.Context) ([]models.Employee, error),
) error {
	employees, err := list(ctx)
	if err != nil {
		return err
	}
	if len(employees) == 0 {
		fmt.Println("No matching employees found.")
		return nil
	}

	purged := 0
	for _, emp := range employees {
		result, err := repo.HardDeleteEmployee(ctx, emp)
		if err != nil {
			fmt.Printf("✗ Failed to delete %s: %v\n", emp.EmployeeID, err)
			continue
		}
		printDeleted(emp, result)
		purged++
	}

	fmt.Printf("\nTotal employees purged: %d of %d\n", purged, len(employees))

	return nil
}

func printDeleted(emp models.Employee, result repository.PurgeResult) {
	fmt.Printf("✓ Deleted %s (%s)\n", emp.FullName, emp.EmployeeID)
	fmt.Printf("  - attendance rows removed: %d\n", result.AttendanceRows)
	fmt.Printf("  - leave rows removed: %d\n", result.LeaveRows)
}
