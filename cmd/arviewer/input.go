package main

import (
	"errors"
	"log"

	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/Carmen-Shannon/oxy-ar/engine"
	"github.com/Carmen-Shannon/oxy-ar/engine/camera"
	"github.com/Carmen-Shannon/oxy-ar/engine/capture"
	"github.com/Carmen-Shannon/oxy-ar/engine/input"
	"github.com/Carmen-Shannon/oxy-ar/engine/viewer"
	"github.com/Carmen-Shannon/oxy-ar/engine/window"
)

// rotateKeys maps the arrow keys to the rotate button axis they hold.
var rotateKeys = map[uint32]string{
	common.KeyUp:    "X",
	common.KeyDown:  "-X",
	common.KeyLeft:  "Y",
	common.KeyRight: "-Y",
}

// panelKeys maps function keys to panel indices.
var panelKeys = map[uint32]int{
	common.KeyF1: 0,
	common.KeyF2: 1,
	common.KeyF3: 2,
	common.KeyF4: 3,
}

// bindInput wires keyboard and mouse to the viewer. Key presses are dispatched onto the
// update thread. Mouse buttons drive the touch emulator:
// left emulates one finger and right a two-finger pinch.
//
// Parameters:
//   - eng: the engine providing the window and command queue
//   - v: the viewer receiving button actions
//   - cam: the camera whose orbit controller WASD/QE drives
//   - emulator: the touch emulator fed by the mouse
func bindInput(eng engine.Engine, v viewer.Viewer, cam camera.Camera, emulator input.Emulator) {
	win := eng.Window()
	held := make(map[uint32]bool)
	overlayHidden := false

	win.SetKeyDownCallback(func(keyCode uint32) {
		held[keyCode] = true

		if axis, ok := rotateKeys[keyCode]; ok {
			eng.Dispatch(func() { v.OnRotateButtonDown(axis) })
			return
		}
		if index, ok := panelKeys[keyCode]; ok {
			eng.Dispatch(func() { v.SwitchPanel(index) })
			return
		}
		if keyCode >= common.Key1 && keyCode <= common.Key9 {
			index := int(keyCode - common.Key1)
			eng.Dispatch(func() {
				if !v.SwitchModel(index) {
					log.Printf("[ARViewer] no model in slot %d", index+1)
				}
			})
			return
		}

		switch keyCode {
		case common.Key0:
			eng.Dispatch(v.Registry().Clear)
		case common.KeyR:
			eng.Dispatch(func() { v.ResetPosition() })
		case common.KeyT:
			eng.Dispatch(v.ResetRotation)
		case common.KeyG:
			eng.Dispatch(v.ResetScale)
		case common.KeyV:
			eng.Dispatch(v.ToggleModel)
		case common.KeyH:
			eng.Dispatch(v.ToggleUIPanelVisibility)
		case common.KeyU:
			overlayHidden = !overlayHidden
			if overlayHidden {
				eng.Dispatch(v.HideUI)
			} else {
				eng.Dispatch(v.ShowUI)
			}
		case common.KeyC:
			eng.Dispatch(func() {
				if err := v.CaptureImage(); err != nil && !errors.Is(err, capture.ErrPipelineClosed) {
					log.Printf("[ARViewer] WARN: capture failed: %v", err)
				}
			})
		case common.KeyP:
			eng.Dispatch(func() {
				v.CapturePhoto()
				eng.AtEndOfFrame(v.EndOfFrame)
			})
		}
	})

	win.SetKeyUpCallback(func(keyCode uint32) {
		held[keyCode] = false
		if _, ok := rotateKeys[keyCode]; ok {
			eng.Dispatch(v.OnRotateButtonUp)
		}
	})

	win.SetMouseDownCallback(func(button window.MouseButton, x, y float32) {
		switch button {
		case window.MouseButtonLeft:
			emulator.PointerDown(input.ButtonPrimary, x, y)
		case window.MouseButtonRight:
			emulator.PointerDown(input.ButtonSecondary, x, y)
		}
	})

	win.SetMouseUpCallback(func(button window.MouseButton, _, _ float32) {
		switch button {
		case window.MouseButtonLeft:
			emulator.PointerUp(input.ButtonPrimary)
		case window.MouseButtonRight:
			emulator.PointerUp(input.ButtonSecondary)
		}
	})

	win.SetMouseMoveCallback(emulator.PointerMove)

	win.SetScrollCallback(func(delta float32) {
		cam.Controller().Zoom(delta)
	})

	eng.AddUpdater(engine.UpdaterFunc(func(_ float32) {
		var azimuth, elevation float32
		if held[common.KeyA] {
			azimuth--
		}
		if held[common.KeyD] {
			azimuth++
		}
		if held[common.KeyW] {
			elevation++
		}
		if held[common.KeyS] {
			elevation--
		}
		ctrl := cam.Controller()
		if azimuth != 0 || elevation != 0 {
			ctrl.Orbit(azimuth, elevation)
		}
		if held[common.KeyQ] {
			ctrl.Zoom(1)
		}
		if held[common.KeyE] {
			ctrl.Zoom(-1)
		}
		cam.Update()
	}))
}
