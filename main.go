package main

import "github.com/jodique2/spotify-album-fetcher/cmd"

func main() {
	cmd.Execute()
}
