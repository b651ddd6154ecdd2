//go:build windows

package console

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetConsoleWindow = kernel32.NewProc("GetConsoleWindow")
	procShowWindow       = user32.NewProc("ShowWindow")
	procSetForeground    = user32.NewProc("SetForegroundWindow")
)

const (
	swHide = 0
	swShow = 5
)

var visible = true

func toggle() (bool, error) {
	hwnd, _, _ := procGetConsoleWindow.Call()
	if hwnd == 0 {
		return visible, fmt.Errorf("console: no console window attached")
	}
	if visible {
		procShowWindow.Call(hwnd, swHide)
		visible = false
	} else {
		procShowWindow.Call(hwnd, swShow)
		procSetForeground.Call(hwnd)
		visible = true
	}
	return visible, nil
}
