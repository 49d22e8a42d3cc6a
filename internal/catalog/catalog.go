// Package catalog describes the dataset files available to the dashboard.
// A catalog is a small YAML file mapping dataset names to CSV paths, so
// the CLI and server can switch datasets by name instead of by path.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	apperrors "mpgdash/internal/errors"
)

// ErrCatalogNotFound is returned when the catalog file does not exist.
// Callers that fall back to the configured dataset path should treat it
// as advisory rather than fatal.
var ErrCatalogNotFound = errors.New("dataset catalog not found")

// Entry describes a single dataset file.
type Entry struct {
	// Title is a human-readable name shown in the UI and CLI.
	Title string `yaml:"title,omitempty"`

	// Path is the CSV file location, relative to the working directory
	// unless absolute.
	Path string `yaml:"path"`

	// Description is optional free text about the dataset.
	Description string `yaml:"description,omitempty"`

	// Source is an optional attribution line, shown under the
	// description.
	Source string `yaml:"source,omitempty"`
}

// File represents the structure of the catalog file.
type File struct {
	// Default names the dataset served when none is requested.
	Default string `yaml:"default,omitempty"`

	// Datasets maps dataset names to their entries.
	Datasets map[string]Entry `yaml:"datasets,omitempty"`
}

// LoadFile loads a dataset catalog from a YAML file. If the file does
// not exist, it returns ErrCatalogNotFound.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCatalogNotFound
		}
		return nil, apperrors.CatalogError(fmt.Sprintf("read catalog %s", path), err)
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, apperrors.CatalogError(fmt.Sprintf("parse catalog %s", path), err)
	}

	if cf.Datasets == nil {
		cf.Datasets = make(map[string]Entry)
	}
	for name, entry := range cf.Datasets {
		if entry.Path == "" {
			return nil, apperrors.CatalogError(fmt.Sprintf("catalog entry %q has no path", name), nil)
		}
	}
	if cf.Default != "" {
		if _, ok := cf.Datasets[cf.Default]; !ok {
			return nil, apperrors.CatalogError(fmt.Sprintf("default dataset %q is not in the catalog", cf.Default), nil)
		}
	}

	return &cf, nil
}

// Resolve returns the entry for name. An empty name resolves to the
// catalog default, or to the only entry when exactly one exists.
func (cf *File) Resolve(name string) (Entry, error) {
	if name == "" {
		name = cf.Default
	}
	if name == "" && len(cf.Datasets) == 1 {
		for only := range cf.Datasets {
			name = only
		}
	}
	if name == "" {
		return Entry{}, apperrors.NotFound("default dataset")
	}

	entry, ok := cf.Datasets[name]
	if !ok {
		return Entry{}, apperrors.NotFound(fmt.Sprintf("dataset %q", name))
	}
	return entry, nil
}

// Names returns the catalog's dataset names in sorted order.
func (cf *File) Names() []string {
	names := make([]string, 0, len(cf.Datasets))
	for name := range cf.Datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
