package main

import "whiteboardLabeler/cmd/app"

func main() {
	app.Execute()
}
