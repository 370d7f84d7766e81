// Package debugui renders Dear ImGui overlays from inside an ECS world.
// Windows are ImguiItem entities; ImguiSystem defers their render calls to
// the end of the frame so they run between the backend's BeginFrame and
// EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/ecs"
)

// ImguiItem holds a render function called once per frame.
type ImguiItem struct {
	Name   string
	Render func()
}

// ImguiInputState records whether ImGui wants the mouse or keyboard. Game
// input should be dropped while it does.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	state := i.InputState.Get()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Iter() {
		frame.Commands.Defer(item.ImguiItem.Render)
	}
}

// Install registers the overlay components in a world and adds the input
// state singleton. Call it before spawning any window.
func Install(registry *ecs.ComponentRegistry, storage *ecs.Storage) *ecs.Singleton[ImguiInputState] {
	ecs.RegisterComponent[ImguiItem](registry)
	return ecs.NewSingleton(storage, ImguiInputState{})
}

// SpawnWindow adds a named window to the world.
func SpawnWindow(storage *ecs.Storage, name string, render func()) ecs.EntityId {
	return storage.Spawn(ImguiItem{Name: name, Render: render})
}
