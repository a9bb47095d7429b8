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

package binding

import (
	"strconv"

	"github.com/focus-game-deck/fgd/logger"
	"github.com/focus-game-deck/fgd/messages"
	"github.com/focus-game-deck/fgd/state"
	"github.com/focus-game-deck/fgd/types"
	"github.com/focus-game-deck/fgd/validation"
)

// SaveApp applies form to the selected managed app. A changed app id is
// committed through RenameApp, which rewrites every game's appsToManage.
func SaveApp(s *state.Session, form *Form) (res Result) {
	defer recoverInto(s, "saveApp", &res)

	doc := s.Document()
	oldID := s.SelectedApp()
	if oldID == "" {
		return Result{Message: messages.New(messages.NoAppSelected)}
	}
	current, ok := doc.ManagedApps.Get(oldID)
	if !ok {
		return Result{Message: messages.New(messages.AppNotFound, oldID)}
	}

	newID := oldID
	if form.Has(AppID) {
		newID = form.Value(AppID)
	}

	edited := current.Clone()
	applyApp(edited, form)

	c := validation.NewCollector()
	for _, fe := range validation.ValidateApp(validation.AppInput{OriginalID: oldID, ID: newID}, doc.ManagedApps.IDs()) {
		c.Add(fe.Field, fe.Key, fe.Args...)
	}
	c.Check(validation.FieldStartAction, validation.ValidateAction(string(edited.GameStartAction)))
	c.Check(validation.FieldEndAction, validation.ValidateAction(string(edited.GameEndAction)))
	c.Check(validation.FieldTermination, validation.ValidateTerminationMethod(string(edited.TerminationMethod)))
	if errs := c.Errors(); len(errs) > 0 {
		s.Logger().Debug("Managed app save rejected", logger.F("id", oldID), logger.F("fields", errs.Fields()))
		return rejected(errs)
	}

	if newID != oldID {
		if err := s.RenameApp(oldID, newID); err != nil {
			return failed(err)
		}
	}
	if err := s.PutApp(newID, edited); err != nil {
		return failed(err)
	}

	s.Logger().Info("Saved managed app", logger.F("id", newID))
	return Result{Saved: true, ID: newID, Message: messages.New(messages.AppSaved, newID)}
}

func applyApp(a *types.AppEntry, form *Form) {
	if form.Has(AppName) {
		a.Name = form.Value(AppName)
	}
	if form.Has(AppComment) {
		a.Comment = form.Value(AppComment)
	}
	if form.Has(AppPath) {
		a.Path = types.NormalizePath(form.Value(AppPath))
	}
	if form.Has(WorkingDirectory) {
		a.WorkingDirectory = types.NormalizePath(form.Value(WorkingDirectory))
	}
	if form.Has(AppProcessName) {
		a.ProcessName = types.SplitProcessNames(form.Value(AppProcessName))
	}
	if form.Has(Arguments) {
		a.Arguments = form.Value(Arguments)
	}
	if form.Has(GameStartAction) {
		a.GameStartAction = actionOrNone(form.Value(GameStartAction))
	}
	if form.Has(GameEndAction) {
		a.GameEndAction = actionOrNone(form.Value(GameEndAction))
	}
	if form.Has(TerminationMethod) {
		a.TerminationMethod = types.TerminationMethod(form.Value(TerminationMethod))
	}
	if form.Has(GracefulTimeoutMs) {
		if form.Value(GracefulTimeoutMs) == "" {
			a.GracefulTimeoutMs = 0
		} else {
			a.GracefulTimeoutMs = form.Int(GracefulTimeoutMs, types.DefaultGracefulTimeoutMs)
		}
	}
}

func actionOrNone(v string) types.Action {
	if v == "" {
		return types.ActionNone
	}
	return types.Action(v)
}

// AppForm renders a stored managed app as a form, the inverse of SaveApp.
func AppForm(id string, a *types.AppEntry) *Form {
	f := NewForm().
		Set(AppID, id).
		Set(AppName, a.Name).
		Set(AppComment, a.Comment).
		Set(AppPath, a.Path).
		Set(WorkingDirectory, a.WorkingDirectory).
		Set(AppProcessName, a.ProcessName.String()).
		Set(Arguments, a.Arguments).
		Set(GameStartAction, string(a.GameStartAction)).
		Set(GameEndAction, string(a.GameEndAction)).
		Set(TerminationMethod, string(a.TerminationMethod))
	if a.GracefulTimeoutMs > 0 {
		f.Set(GracefulTimeoutMs, strconv.Itoa(a.GracefulTimeoutMs))
	} else {
		f.Set(GracefulTimeoutMs, "")
	}
	return f
}
