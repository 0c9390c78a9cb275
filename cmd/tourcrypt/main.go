// Command tourcrypt derives symmetric keys from passphrases by solving
// the Knight's Tour, and encrypts/decrypts messages with the resulting
// keystream.
package main

import (
	"fmt"
	"os"

	"github.com/tourcrypt/tourcrypt/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tourcrypt:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
