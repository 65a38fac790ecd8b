package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87 // W key (ASCII)
	KeyA     = 65 // A key (ASCII)
	KeyS     = 83 // S key (ASCII)
	KeyD     = 68 // D key (ASCII)
	KeyQ     = 81 // Q key (ASCII)
	KeyE     = 69 // E key (ASCII)
	KeyC     = 67 // C key (ASCII)
	KeyG     = 71 // G key (ASCII)
	KeyH     = 72 // H key (ASCII)
	KeyP     = 80 // P key (ASCII)
	KeyR     = 82 // R key (ASCII)
	KeyT     = 84 // T key (ASCII)
	KeyU     = 85 // U key (ASCII)
	KeyV     = 86 // V key (ASCII)

	Key0 = 48 // 0 key (ASCII)
	Key1 = 49 // 1 key (ASCII)
	Key9 = 57 // 9 key (ASCII)
)

// Non-printable keys (GLFW)
const (
	KeyEsc   = 256
	KeyRight = 262
	KeyLeft  = 263
	KeyDown  = 264
	KeyUp    = 265
	KeyF1    = 290
	KeyF2    = 291
	KeyF3    = 292
	KeyF4    = 293
)
