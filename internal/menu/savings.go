package menu

import (
	"context"
	"errors"
	"strconv"

	"pfm/internal/core"
)

func (m *Menu) savingsMenu(ctx context.Context, username string) error {
	for {
		m.println("\n--- SAVINGS MENU ---")
		m.println("1. Create Savings Goal")
		m.println("2. View Savings Goals")
		m.println("3. Add Money to Goal")
		m.println("4. Delete Goal")
		m.println("5. Back to Main Menu")

		choice, err := m.prompt("Choose: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = m.createGoal(ctx, username)
		case "2":
			err = m.viewGoals(ctx, username)
		case "3":
			err = m.addToGoal(ctx, username)
		case "4":
			err = m.deleteGoal(ctx, username)
		case "5":
			return nil
		default:
			m.println("Invalid choice.\n")
		}
		if err = m.report(ctx, err); err != nil {
			return err
		}
	}
}

func (m *Menu) createGoal(ctx context.Context, username string) error {
	m.println("\n--- CREATE SAVINGS GOAL ---\n")

	name, err := m.prompt("Enter goal name (e.g., New Phone, Laptop, Trip): ")
	if err != nil {
		return err
	}
	if name == "" {
		m.fail("Goal name cannot be empty.\n")
		return nil
	}
	target, err := m.promptAmount("Enter target amount: ", "Enter a valid number.", "Target must be greater than zero.")
	if err != nil {
		return err
	}

	if _, err := m.deps.Savings.Create(ctx, username, name, target, m.today()); err != nil {
		return err
	}
	m.ok("Savings goal '" + name + "' created with target " + m.money(target) + "\n")
	return nil
}

func (m *Menu) viewGoals(ctx context.Context, username string) error {
	m.println("\n--- YOUR SAVINGS GOALS ---\n")

	goals, err := m.deps.Savings.List(ctx, username)
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		m.println("No savings goals found.\n")
		return nil
	}
	for _, g := range goals {
		m.printf("ID: %d\n", g.ID)
		m.printf("Goal Name: %s\n", g.Name)
		m.printf("Target: %s\n", m.money(g.Target))
		m.printf("Saved: %s\n", m.money(g.Current))
		m.printf("Remaining: %s\n", m.money(g.Remaining()))
		m.println("-----------------------------")
	}
	return nil
}

// listGoals prints one line per goal, or emptyMsg when there are none.
func (m *Menu) listGoals(ctx context.Context, username, emptyMsg string) ([]core.Goal, error) {
	goals, err := m.deps.Savings.List(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		m.println(emptyMsg)
		return nil, nil
	}
	for _, g := range goals {
		m.printf("%d. %s - Saved %s / %s\n", g.ID, g.Name, m.money(g.Current), m.money(g.Target))
	}
	return goals, nil
}

func (m *Menu) promptGoalID(label string) (int, error) {
	for {
		s, err := m.prompt(label)
		if err != nil {
			return 0, err
		}
		id, err := strconv.Atoi(s)
		if err != nil {
			m.fail("Invalid ID.")
			continue
		}
		return id, nil
	}
}

func findGoal(goals []core.Goal, id int) (core.Goal, bool) {
	for _, g := range goals {
		if g.ID == id {
			return g, true
		}
	}
	return core.Goal{}, false
}

func (m *Menu) addToGoal(ctx context.Context, username string) error {
	m.println("\n--- ADD MONEY TO SAVINGS GOAL ---\n")

	goals, err := m.listGoals(ctx, username, "No goals exist. Create one first.\n")
	if err != nil || len(goals) == 0 {
		return err
	}

	id, err := m.promptGoalID("Enter goal ID to add money: ")
	if err != nil {
		return err
	}
	if _, ok := findGoal(goals, id); !ok {
		m.fail("Goal not found.\n")
		return nil
	}

	amount, err := m.promptAmount("Enter amount to add: ", "Invalid amount.", "Enter a positive number.")
	if err != nil {
		return err
	}

	g, err := m.deps.Savings.AddMoney(ctx, username, id, amount)
	if errors.Is(err, core.ErrNotFound) {
		m.fail("Goal not found.\n")
		return nil
	}
	if err != nil {
		return err
	}
	m.ok("Added " + m.money(amount) + " to '" + g.Name + "'")
	m.printf("Progress: %s / %s\n\n", m.money(g.Current), m.money(g.Target))
	return nil
}

func (m *Menu) deleteGoal(ctx context.Context, username string) error {
	m.println("\n--- DELETE SAVINGS GOAL ---\n")

	goals, err := m.listGoals(ctx, username, "No goals to delete.\n")
	if err != nil || len(goals) == 0 {
		return err
	}

	id, err := m.promptGoalID("Enter goal ID to delete: ")
	if err != nil {
		return err
	}
	if err := m.deps.Savings.Delete(ctx, username, id); err != nil {
		return err
	}
	m.ok("Goal deleted successfully.\n")
	return nil
}
