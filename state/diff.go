// Copyright (C) 2025 Mono Technologies Inc.
//
// This program is free software; you can redistribute it and/or
// modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.

package state

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/focus-game-deck/fgd/types"
)

// Change types reported in DiffResult.ChangeType.
const (
	ChangeAdded    = "added"
	ChangeRemoved  = "removed"
	ChangeModified = "modified"
)

type DiffResult struct {
	Path       string      `json:"path"`
	Old        interface{} `json:"old"`
	New        interface{} `json:"new"`
	ChangeType string      `json:"change_type"` // "modified", "added", "removed"
}

// DiffDocuments compares two documents field by field. Entries present in
// only one side are reported whole; a renamed entry shows up as a removal
// plus an addition. Reordering is reported on the collection's _order path.
func DiffDocuments(old, new *types.Document) []DiffResult {
	var diffs []DiffResult

	diffs = append(diffs, diffValues("language", reflect.ValueOf(old.Language), reflect.ValueOf(new.Language))...)
	diffs = append(diffs, diffCollection("games", &old.Games, &new.Games)...)
	diffs = append(diffs, diffCollection("managedApps", &old.ManagedApps, &new.ManagedApps)...)
	diffs = append(diffs, diffValues("integrations", reflect.ValueOf(old.Integrations), reflect.ValueOf(new.Integrations))...)
	diffs = append(diffs, diffValues("paths", reflect.ValueOf(old.Paths), reflect.ValueOf(new.Paths))...)
	diffs = append(diffs, diffValues("logging", reflect.ValueOf(old.Logging), reflect.ValueOf(new.Logging))...)

	return diffs
}

func diffCollection[T any](base string, old, new *types.Collection[T]) []DiffResult {
	var diffs []DiffResult

	for _, id := range new.IDs() {
		newEntry, _ := new.Get(id)
		oldEntry, exists := old.Get(id)
		path := fmt.Sprintf("%s.%s", base, id)

		if !exists {
			diffs = append(diffs, DiffResult{
				Path:       path,
				Old:        nil,
				New:        newEntry,
				ChangeType: ChangeAdded,
			})
			continue
		}

		diffs = append(diffs, diffValues(path, reflect.ValueOf(oldEntry), reflect.ValueOf(newEntry))...)
	}

	for _, id := range old.IDs() {
		if !new.Has(id) {
			oldEntry, _ := old.Get(id)
			diffs = append(diffs, DiffResult{
				Path:       fmt.Sprintf("%s.%s", base, id),
				Old:        oldEntry,
				New:        nil,
				ChangeType: ChangeRemoved,
			})
		}
	}

	if sameMembers(old.IDs(), new.IDs()) && !reflect.DeepEqual(old.IDs(), new.IDs()) {
		diffs = append(diffs, DiffResult{
			Path:       fmt.Sprintf("%s.%s", base, types.OrderKey),
			Old:        old.IDs(),
			New:        new.IDs(),
			ChangeType: ChangeModified,
		})
	}

	return diffs
}

// diffValues performs a generic reflection-based diff, descending into
// structs and through pointers.
func diffValues(path string, old, new reflect.Value) []DiffResult {
	if old.Kind() == reflect.Ptr {
		switch {
		case old.IsNil() && new.IsNil():
			return nil
		case old.IsNil():
			return []DiffResult{{Path: path, Old: nil, New: new.Interface(), ChangeType: ChangeAdded}}
		case new.IsNil():
			return []DiffResult{{Path: path, Old: old.Interface(), New: nil, ChangeType: ChangeRemoved}}
		}
		return diffValues(path, old.Elem(), new.Elem())
	}

	if old.Kind() == reflect.Struct {
		return diffStructs(path, old, new)
	}

	if reflect.DeepEqual(old.Interface(), new.Interface()) {
		return nil
	}
	if isZeroValue(old) && isZeroValue(new) {
		return nil
	}
	return []DiffResult{{
		Path:       path,
		Old:        old.Interface(),
		New:        new.Interface(),
		ChangeType: ChangeModified,
	}}
}

func diffStructs(basePath string, oldVal, newVal reflect.Value) []DiffResult {
	var diffs []DiffResult
	oldType := oldVal.Type()

	for i := 0; i < oldVal.NumField(); i++ {
		field := oldType.Field(i)

		if !field.IsExported() {
			continue
		}

		fieldName := field.Tag.Get("json")
		if fieldName == "" || fieldName == "-" {
			fieldName = field.Name
		}

		if idx := strings.Index(fieldName, ","); idx != -1 {
			fieldName = fieldName[:idx]
		}

		diffs = append(diffs, diffValues(basePath+"."+fieldName, oldVal.Field(i), newVal.Field(i))...)
	}

	return diffs
}

func sameMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		if !set[v] {
			return false
		}
	}
	return true
}

func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}

// FormatDiff renders diffs one per line.
func FormatDiff(diffs []DiffResult) string {
	if len(diffs) == 0 {
		return "No changes"
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("Found %d change(s):\n", len(diffs)))

	for _, diff := range diffs {
		switch diff.ChangeType {
		case ChangeAdded:
			lines = append(lines, fmt.Sprintf("  + %s (added)", diff.Path))
		case ChangeRemoved:
			lines = append(lines, fmt.Sprintf("  - %s (removed)", diff.Path))
		case ChangeModified:
			lines = append(lines, fmt.Sprintf("  ~ %s: %s -> %s", diff.Path, formatValue(diff.Old), formatValue(diff.New)))
		}
	}

	return strings.Join(lines, "\n")
}

func formatValue(v interface{}) string {
	if v == nil {
		return "(none)"
	}

	val := reflect.ValueOf(v)
	if isZeroValue(val) {
		return "(empty)"
	}

	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case fmt.Stringer:
		return fmt.Sprintf("%q", v.String())
	default:
		return fmt.Sprintf("%v", v)
	}
}
