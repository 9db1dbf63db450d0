package main

// Settings travels from the config window to the render window
// whenever the user changes the fractal parameters. The render window
// answers every navigation with the current *newton.Area so the config
// window can display the viewport and save exactly what is on screen.
type Settings struct {
	Degree   int
	Parallel bool
}
