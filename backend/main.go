package main

import "bearinmind/backend/cmd"

// @title Bear In Mind API
// @version 1.0
// @BasePath /
func main() {
	cmd.Execute()
}
