package main

import (
	"fmt"
	"time"

	"tabletop-scene/core"
	"tabletop-scene/renderer"
)

func main() {
	fmt.Println("Starting tabletop scene...")

	windowConfig := core.DefaultWindowConfig()

	window, err := core.NewWindow(windowConfig)
	if err != nil {
		fmt.Printf("Failed to create window: %v\n", err)
		return
	}
	defer window.Destroy()

	sceneRenderer, err := renderer.NewSceneRenderer(window)
	if err != nil {
		fmt.Printf("Failed to create scene renderer: %v\n", err)
		return
	}
	defer sceneRenderer.Destroy()

	if err := sceneRenderer.PrepareScene(); err != nil {
		fmt.Printf("Failed to prepare scene: %v\n", err)
		return
	}

	fmt.Println("===========================================")
	fmt.Println("  Tabletop Scene")
	fmt.Println("===========================================")
	fmt.Println("")
	fmt.Println("CAMERA CONTROLS:")
	fmt.Println("  W / S           - Move forward / backward")
	fmt.Println("  A / D           - Strafe left / right")
	fmt.Println("  Q / E           - Move up / down")
	fmt.Println("  Mouse           - Look around")
	fmt.Println("  Scroll wheel    - Move along view direction")
	fmt.Println("  P / O           - Perspective / orthographic projection")
	fmt.Println("  ESC             - Quit")
	fmt.Println("")

	frameCount := 0
	lastTitleTime := time.Now()

	for !window.ShouldClose() {
		window.PollEvents()

		if window.IsKeyPressed(core.KeyEscape) {
			break
		}

		fbWidth, fbHeight := window.GetFramebufferSize()
		sceneRenderer.Resize(fbWidth, fbHeight)

		sceneRenderer.RenderScene()
		window.SwapBuffers()

		frameCount++
		now := time.Now()
		if now.Sub(lastTitleTime).Seconds() >= 1.0 {
			cam := sceneRenderer.Camera
			window.SetTitle(fmt.Sprintf("Tabletop Scene | FPS: %d | (%.1f, %.1f, %.1f)",
				frameCount, cam.Position.X, cam.Position.Y, cam.Position.Z))
			frameCount = 0
			lastTitleTime = now
		}
	}

	fmt.Println("Exiting...")
}
