// ============================================================================
// minilang - Front end for a small imperative language
// ============================================================================
//
// Package:     version
// Description: Central version management for all components
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for all minilang components
const (
	// Platform version
	Platform = "1.0.0"

	// Grammar revision accepted by the lexer and parser
	Language = "1.0.0"

	// Component versions
	Engine   = "1.0.0"
	Chomsky  = "1.0.0"
	Explorer = "1.0.0"
)

// Set via -ldflags "-X github.com/msto63/minilang/pkg/core/version.Commit=..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ServiceVersion returns the version for a given component name
func ServiceVersion(name string) string {
	switch name {
	case "language":
		return Language
	case "engine":
		return Engine
	case "chomsky":
		return Chomsky
	case "explorer":
		return Explorer
	default:
		return Platform
	}
}

// Info describes the running binary
type Info struct {
	Component string `json:"component" yaml:"component"`
	Version   string `json:"version" yaml:"version"`
	Language  string `json:"language" yaml:"language"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// Get returns build information for a component
func Get(component string) Info {
	return Info{
		Component: component,
		Version:   ServiceVersion(component),
		Language:  Language,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// String returns a one-line description
func (i Info) String() string {
	return fmt.Sprintf("%s %s (language %s, commit %s, built %s, %s)",
		i.Component, i.Version, i.Language, i.Commit, i.BuildDate, i.GoVersion)
}
