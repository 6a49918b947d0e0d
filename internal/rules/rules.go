// Package rules links every built-in rule into the core registry.
package rules

import (
	_ "gpca/internal/rules/briansbrain"
	_ "gpca/internal/rules/cyclic"
	_ "gpca/internal/rules/elementary"
	_ "gpca/internal/rules/lifelike"
)
