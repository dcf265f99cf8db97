package prompt

import "fmt"

// SelectCategory prompts for an incident category.
func SelectCategory() (string, error) {
	return SelectString("Category", []string{"police", "fire", "medical", "disaster"})
}

// SelectPriority prompts for an incident priority, 1 being the most
// urgent.
func SelectPriority(defaultValue int) (int, error) {
	value, err := InputInt("Priority (1-5, 1 is most urgent)", defaultValue)
	if err != nil {
		return 0, err
	}
	if value < 1 || value > 5 {
		return 0, fmt.Errorf("priority must be between 1 and 5")
	}
	return value, nil
}

// SelectUnitStatus prompts for a unit's operational status.
func SelectUnitStatus() (string, error) {
	return SelectString("Unit status", []string{"available", "dispatched", "on_scene", "out_of_service"})
}
