package services

import (
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		cat, err := svc.CreateCategory("Groceries", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)

		if cat.ID == 0 {
			t.Fatal("expected non-zero category ID")
		}
		if cat.Name != "Groceries" {
			t.Errorf("expected name Groceries, got %s", cat.Name)
		}
		if cat.Type != models.CategoryTypeExpense {
			t.Errorf("expected type expense, got %s", cat.Type)
		}
	})

	t.Run("trims_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		cat, err := svc.CreateCategory("  Rent  ", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)
		if cat.Name != "Rent" {
			t.Errorf("expected name Rent, got %q", cat.Name)
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("Food", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory("Food", models.CategoryTypeIncome)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("   ", models.CategoryTypeExpense)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("Misc", models.CategoryType("transfer"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListCategories(t *testing.T) {
	t.Run("ordered_by_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		testutil.CreateTestCategoryNamed(t, db, "Salary", models.CategoryTypeIncome)
		testutil.CreateTestCategoryNamed(t, db, "Groceries", models.CategoryTypeExpense)
		testutil.CreateTestCategoryNamed(t, db, "Rent", models.CategoryTypeExpense)

		categories, err := svc.ListCategories()
		testutil.AssertNoError(t, err)

		want := []string{"Groceries", "Rent", "Salary"}
		if len(categories) != len(want) {
			t.Fatalf("expected %d categories, got %d", len(want), len(categories))
		}
		for i, name := range want {
			if categories[i].Name != name {
				t.Errorf("position %d: expected %s, got %s", i, name, categories[i].Name)
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		categories, err := svc.ListCategories()
		testutil.AssertNoError(t, err)
		if categories == nil || len(categories) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", categories)
		}
	})
}

func TestGetCategoryByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeIncome)

		found, err := svc.GetCategoryByID(cat.ID)
		testutil.AssertNoError(t, err)
		if found.Name != cat.Name {
			t.Errorf("expected name %s, got %s", cat.Name, found.Name)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.GetCategoryByID(99999)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("rename", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		cat := testutil.CreateTestCategoryNamed(t, db, "Food", models.CategoryTypeExpense)

		name := "Groceries"
		updated, err := svc.UpdateCategory(cat.ID, &name, nil)
		testutil.AssertNoError(t, err)
		if updated.Name != "Groceries" {
			t.Errorf("expected name Groceries, got %s", updated.Name)
		}
	})

	t.Run("rename_to_existing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		testutil.CreateTestCategoryNamed(t, db, "Rent", models.CategoryTypeExpense)
		cat := testutil.CreateTestCategoryNamed(t, db, "Food", models.CategoryTypeExpense)

		name := "Rent"
		_, err := svc.UpdateCategory(cat.ID, &name, nil)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("change_type_unreferenced", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)

		saving := models.CategoryTypeSaving
		updated, err := svc.UpdateCategory(cat.ID, nil, &saving)
		testutil.AssertNoError(t, err)
		if updated.Type != models.CategoryTypeSaving {
			t.Errorf("expected type saving, got %s", updated.Type)
		}
	})

	t.Run("change_type_referenced", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
		testutil.CreateTestTransaction(t, db, cat.ID, "-10", testutil.Date(2025, 11, 3))

		income := models.CategoryTypeIncome
		_, err := svc.UpdateCategory(cat.ID, nil, &income)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		name := "x"
		_, err := svc.UpdateCategory(99999, &name, nil)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("unreferenced", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)

		testutil.AssertNoError(t, svc.DeleteCategory(cat.ID))

		_, err := svc.GetCategoryByID(cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("name_reusable_after_delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		cat := testutil.CreateTestCategoryNamed(t, db, "Kids", models.CategoryTypeExpense)

		testutil.AssertNoError(t, svc.DeleteCategory(cat.ID))
		_, err := svc.CreateCategory("Kids", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)
	})

	t.Run("referenced_by_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
		testutil.CreateTestBudget(t, db, cat.ID, 2025, 11, "300")

		err := svc.DeleteCategory(cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		err := svc.DeleteCategory(99999)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}
