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
	"github.com/focus-game-deck/fgd/logger"
	"github.com/focus-game-deck/fgd/messages"
	"github.com/focus-game-deck/fgd/state"
	"github.com/focus-game-deck/fgd/types"
	"github.com/focus-game-deck/fgd/validation"
)

// SaveGame applies form to the selected game. The edit is made on a clone
// and validated before anything is committed; a failed validation leaves the
// document untouched. A changed game id is committed through RenameGame so
// the order position and the selection follow it.
func SaveGame(s *state.Session, form *Form) (res Result) {
	defer recoverInto(s, "saveGame", &res)

	doc := s.Document()
	oldID := s.SelectedGame()
	if oldID == "" {
		return Result{Message: messages.New(messages.NoGameSelected)}
	}
	current, ok := doc.Games.Get(oldID)
	if !ok {
		return Result{Message: messages.New(messages.GameNotFound, oldID)}
	}

	newID := oldID
	if form.Has(GameID) {
		newID = form.Value(GameID)
	}

	edited := current.Clone()
	applyGame(edited, form, doc)

	errs := validation.ValidateGame(validation.GameInput{
		OriginalID:     oldID,
		ID:             newID,
		Platform:       edited.Platform,
		SteamAppID:     edited.SteamAppID,
		EpicGameID:     edited.EpicGameID,
		RiotGameID:     edited.RiotGameID,
		ExecutablePath: edited.ExecutablePath,
	}, doc.Games.IDs())
	if len(errs) > 0 {
		s.Logger().Debug("Game save rejected", logger.F("id", oldID), logger.F("fields", errs.Fields()))
		return rejected(errs)
	}

	if newID != oldID {
		if err := s.RenameGame(oldID, newID); err != nil {
			return failed(err)
		}
	}
	if err := s.PutGame(newID, edited); err != nil {
		return failed(err)
	}

	s.Logger().Info("Saved game", logger.F("id", newID))
	return Result{Saved: true, ID: newID, Message: messages.New(messages.GameSaved, newID)}
}

func applyGame(g *types.GameEntry, form *Form, doc *types.Document) {
	if form.Has(GameName) {
		g.Name = form.Value(GameName)
	}
	if form.Has(Platform) {
		g.Platform = types.Platform(form.Value(Platform))
	}
	if form.Has(SteamAppID) {
		g.SteamAppID = form.Value(SteamAppID)
	}
	if form.Has(EpicGameID) {
		g.EpicGameID = form.Value(EpicGameID)
	}
	if form.Has(RiotGameID) {
		g.RiotGameID = form.Value(RiotGameID)
	}
	if form.Has(ExecutablePath) {
		g.ExecutablePath = types.NormalizePath(form.Value(ExecutablePath))
	}
	if form.Has(GameProcessName) {
		g.ProcessName = form.Value(GameProcessName)
	}
	if form.Has(GameComment) {
		g.Comment = form.Value(GameComment)
	}
	if form.Has(AppsToManage) {
		g.AppsToManage = dedupeKnown(form.List(AppsToManage), doc.ManagedApps.Has)
	}

	applyGameIntegrations(g, form)
}

func applyGameIntegrations(g *types.GameEntry, form *Form) {
	enabling := form.Bool(UseOBS) || form.Bool(UseDiscord) || form.Bool(UseVTubeStudio)
	if g.Integrations != nil || enabling {
		in := g.EnsureIntegrations()
		if form.Has(UseOBS) {
			in.UseOBS = form.Bool(UseOBS)
		}
		if form.Has(UseDiscord) {
			in.UseDiscord = form.Bool(UseDiscord)
		}
		if form.Has(UseVTubeStudio) {
			in.UseVTubeStudio = form.Bool(UseVTubeStudio)
		}
	}
	if g.Integrations == nil {
		return
	}
	in := g.Integrations

	if in.UseOBS {
		if form.HasAny(OBSReplayBuffer, OBSTargetScene, OBSRollback) {
			obs := g.EnsureOBSSettings()
			if form.Has(OBSReplayBuffer) {
				obs.EnableReplayBuffer = form.Bool(OBSReplayBuffer)
			}
			if form.Has(OBSTargetScene) {
				obs.TargetScene = form.Value(OBSTargetScene)
			}
			if form.Has(OBSRollback) {
				obs.EnableRollback = form.Bool(OBSRollback)
			}
		}
	} else {
		in.OBSSettings = nil
	}

	if in.UseVTubeStudio {
		if form.HasAny(VTSModelID, VTSOnLaunchHotkeys, VTSOnExitHotkeys) {
			vts := g.EnsureVTubeStudioSettings()
			if form.Has(VTSModelID) {
				vts.ModelID = form.Value(VTSModelID)
			}
			if form.Has(VTSOnLaunchHotkeys) {
				vts.OnLaunchHotkeys = form.List(VTSOnLaunchHotkeys)
			}
			if form.Has(VTSOnExitHotkeys) {
				vts.OnExitHotkeys = form.List(VTSOnExitHotkeys)
			}
		}
	} else {
		in.VTubeStudioSettings = nil
	}
}

// GameForm renders a stored game as a form, the inverse of SaveGame.
func GameForm(id string, g *types.GameEntry) *Form {
	f := NewForm().
		Set(GameID, id).
		Set(GameName, g.Name).
		Set(Platform, string(g.Platform)).
		Set(SteamAppID, g.SteamAppID).
		Set(EpicGameID, g.EpicGameID).
		Set(RiotGameID, g.RiotGameID).
		Set(ExecutablePath, g.ExecutablePath).
		Set(GameProcessName, g.ProcessName).
		Set(GameComment, g.Comment).
		SetList(AppsToManage, g.AppsToManage)

	in := g.IntegrationsOrDefault()
	f.SetBool(UseOBS, in.UseOBS).
		SetBool(UseDiscord, in.UseDiscord).
		SetBool(UseVTubeStudio, in.UseVTubeStudio)
	if in.OBSSettings != nil {
		f.SetBool(OBSReplayBuffer, in.OBSSettings.EnableReplayBuffer).
			Set(OBSTargetScene, in.OBSSettings.TargetScene).
			SetBool(OBSRollback, in.OBSSettings.EnableRollback)
	}
	if in.VTubeStudioSettings != nil {
		f.Set(VTSModelID, in.VTubeStudioSettings.ModelID).
			SetList(VTSOnLaunchHotkeys, in.VTubeStudioSettings.OnLaunchHotkeys).
			SetList(VTSOnExitHotkeys, in.VTubeStudioSettings.OnExitHotkeys)
	}
	return f
}
