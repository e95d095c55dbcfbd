package main

import "forum-server/cmd/forumctl/cmd"

func main() {
	cmd.Execute()
}
