package scenarios

import "github.com/themizzi/menucheck/internal/runner"

// All returns every suite in a stable order
func All() []runner.Scenario {
	var all []runner.Scenario
	for _, suite := range [][]runner.Scenario{
		consentScenarios(),
		displayScenarios(),
		navigationScenarios(),
		searchScenarios(),
		errorScenarios(),
		performanceScenarios(),
		responsiveScenarios(),
		ariaScenarios(),
		traversalScenarios(),
	} {
		all = append(all, suite...)
	}
	return all
}
