// ============================================================================
// minilang - Front end for a small imperative language
// ============================================================================
//
// Package:     explorer
// Description: Message types for async operations in the Explorer
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package explorer

import "github.com/msto63/minilang/foundation/lang"

// checkedMsg is sent when a check of the current source has finished
type checkedMsg struct {
	source string
	result *lang.Result
	err    error
}

// ReloadMsg asks the Explorer to re-read and re-check its source
type ReloadMsg struct{}
