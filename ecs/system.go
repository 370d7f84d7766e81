package ecs

// System is one step of a frame. Query and Singleton fields of a system
// struct are bound by Scheduler.Register; other fields persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is passed to every system of a frame.
type UpdateFrame struct {
	// DeltaTime is the frame length in seconds.
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  commands,
		Storage:   storage,
	}
}
