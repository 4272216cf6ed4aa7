package main

import (
	"context"
	"fmt"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func ptr[T any](v T) *T { return &v }

func money(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func newDemoCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Add demo finance and HR records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := connect(); err != nil {
				return err
			}
			ctx := context.Background()
			var count int64
			if err := config.GetDB().WithContext(ctx).Model(&models.Department{}).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 && !force {
				fmt.Println("Demo data already present; use --force to add it again.")
				return nil
			}
			if err := seedDemo(ctx, time.Now()); err != nil {
				return err
			}
			fmt.Println("Finance + HR seed data added.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "seed even when departments already exist")
	return cmd
}

func seedDemo(ctx context.Context, now time.Time) error {
	departments := []models.NewDepartment{
		{Name: "Engineering", Head: ptr("David Kim")},
		{Name: "Finance", Head: ptr("Priya Sharma")},
		{Name: "HR", Head: ptr("Tom Williams")},
		{Name: "Sales", Head: ptr("Marcus Johnson")},
		{Name: "Marketing", Head: ptr("Lisa Park")},
		{Name: "Legal", Head: ptr("Anna Müller")},
	}
	for i := range departments {
		if _, err := models.CreateDepartment(ctx, &departments[i]); err != nil {
			return fmt.Errorf("department %s: %w", departments[i].Name, err)
		}
	}

	day := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	employees := []models.NewEmployee{
		{FullName: "Sarah Chen", Email: "sarah@benela.dev", Department: ptr("Engineering"), Role: ptr("Sr. Engineer"), Salary: money(95000), Status: models.EmployeeStatusActive, StartDate: day(2022, 1, 15)},
		{FullName: "Marcus Johnson", Email: "marcus@benela.dev", Department: ptr("Sales"), Role: ptr("Account Exec"), Salary: money(72000), Status: models.EmployeeStatusActive, StartDate: day(2023, 3, 1)},
		{FullName: "Priya Sharma", Email: "priya@benela.dev", Department: ptr("Finance"), Role: ptr("Analyst"), Salary: money(68000), Status: models.EmployeeStatusOnLeave, StartDate: day(2021, 6, 1)},
		{FullName: "Tom Williams", Email: "tom@benela.dev", Department: ptr("HR"), Role: ptr("HR Manager"), Salary: money(75000), Status: models.EmployeeStatusActive, StartDate: day(2020, 11, 1)},
		{FullName: "Lisa Park", Email: "lisa@benela.dev", Department: ptr("Marketing"), Role: ptr("CMO"), Salary: money(110000), Status: models.EmployeeStatusActive, StartDate: day(2019, 8, 1)},
		{FullName: "David Kim", Email: "david@benela.dev", Department: ptr("Engineering"), Role: ptr("Lead Developer"), Salary: money(105000), Status: models.EmployeeStatusActive, StartDate: day(2022, 2, 14)},
		{FullName: "Anna Müller", Email: "anna@benela.dev", Department: ptr("Legal"), Role: ptr("Legal Counsel"), Salary: money(98000), Status: models.EmployeeStatusActive, StartDate: day(2023, 4, 3)},
		{FullName: "James Carter", Email: "james@benela.dev", Department: ptr("Engineering"), Role: ptr("Junior Dev"), Salary: money(58000), Status: models.EmployeeStatusActive, StartDate: day(2024, 1, 8)},
	}
	for i := range employees {
		if _, err := models.CreateEmployee(ctx, &employees[i]); err != nil {
			return fmt.Errorf("employee %s: %w", employees[i].Email, err)
		}
	}

	positions := []models.NewPosition{
		{Title: "Senior Backend Engineer", Department: ptr("Engineering"), SalaryMin: money(90000), SalaryMax: money(120000), Status: models.PositionStatusOpen, Description: ptr("Go, MySQL, distributed systems experience required")},
		{Title: "Product Designer", Department: ptr("Marketing"), SalaryMin: money(70000), SalaryMax: money(90000), Status: models.PositionStatusOpen, Description: ptr("Figma, design systems, B2B SaaS experience")},
		{Title: "Sales Development Rep", Department: ptr("Sales"), SalaryMin: money(50000), SalaryMax: money(65000), Status: models.PositionStatusOpen, Description: ptr("Outbound sales, CRM tools, strong communication")},
		{Title: "DevOps Engineer", Department: ptr("Engineering"), SalaryMin: money(85000), SalaryMax: money(115000), Status: models.PositionStatusOnHold, Description: ptr("AWS, Kubernetes, CI/CD pipelines")},
		{Title: "Financial Analyst", Department: ptr("Finance"), SalaryMin: money(60000), SalaryMax: money(80000), Status: models.PositionStatusOpen, Description: ptr("FP&A experience, Excel/SQL proficiency")},
	}
	for i := range positions {
		if _, err := models.CreatePosition(ctx, &positions[i]); err != nil {
			return fmt.Errorf("position %s: %w", positions[i].Title, err)
		}
	}

	daysAgo := func(n int) *time.Time {
		t := now.AddDate(0, 0, -n)
		return &t
	}
	transactions := []models.NewTransaction{
		{Description: "Client Payment - Acme Corp", Category: "Revenue", Amount: money(18500), Type: models.TransactionTypeIncome, Status: models.TransactionStatusReceived, Date: daysAgo(1)},
		{Description: "AWS Infrastructure", Category: "Operations", Amount: money(4200), Type: models.TransactionTypeExpense, Status: models.TransactionStatusPaid, Date: daysAgo(1)},
		{Description: "Payroll - February", Category: "HR", Amount: money(42000), Type: models.TransactionTypeExpense, Status: models.TransactionStatusPaid, Date: daysAgo(2)},
		{Description: "Client Payment - XYZ Ltd", Category: "Revenue", Amount: money(9800), Type: models.TransactionTypeIncome, Status: models.TransactionStatusReceived, Date: daysAgo(3)},
		{Description: "Office Supplies", Category: "Admin", Amount: money(380), Type: models.TransactionTypeExpense, Status: models.TransactionStatusPaid, Date: daysAgo(3)},
		{Description: "Software Licenses", Category: "Tech", Amount: money(1200), Type: models.TransactionTypeExpense, Status: models.TransactionStatusPending, Date: daysAgo(4)},
		{Description: "Marketing Campaign - Feb", Category: "Marketing", Amount: money(5500), Type: models.TransactionTypeExpense, Status: models.TransactionStatusPaid, Date: daysAgo(5)},
		{Description: "Client Payment - StartupCo", Category: "Revenue", Amount: money(14200), Type: models.TransactionTypeIncome, Status: models.TransactionStatusReceived, Date: daysAgo(6)},
	}
	for i := range transactions {
		if _, err := models.CreateTransaction(ctx, &transactions[i]); err != nil {
			return fmt.Errorf("transaction %s: %w", transactions[i].Description, err)
		}
	}

	invoices := []models.NewInvoice{
		{InvoiceNumber: "INV-001", ClientName: "Acme Corp", Amount: money(18500), Status: "paid", ClientEmail: ptr("billing@acme.com")},
		{InvoiceNumber: "INV-002", ClientName: "XYZ Ltd", Amount: money(9800), Status: "paid", ClientEmail: ptr("finance@xyz.com")},
		{InvoiceNumber: "INV-003", ClientName: "StartupCo", Amount: money(14200), Status: models.InvoiceStatusPending, ClientEmail: ptr("cfo@startupco.com")},
		{InvoiceNumber: "INV-004", ClientName: "GlobalTech", Amount: money(32000), Status: "overdue", ClientEmail: ptr("ap@globaltech.com")},
		{InvoiceNumber: "INV-005", ClientName: "NovaCorp", Amount: money(8500), Status: models.InvoiceStatusDraft, ClientEmail: ptr("billing@novacorp.com")},
	}
	for i := range invoices {
		if _, err := models.CreateInvoice(ctx, &invoices[i]); err != nil {
			return fmt.Errorf("invoice %s: %w", invoices[i].InvoiceNumber, err)
		}
	}
	return nil
}
