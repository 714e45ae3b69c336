package main

import "immich-album-sync/cmd"

func main() {
	cmd.Execute()
}
