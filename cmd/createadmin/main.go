// Command createadmin creates an admin account or resets its password.
//
//	createadmin -c /etc/envatex.yml -username admin -password secret
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/envatex/envatex-api/config"
	"github.com/envatex/envatex-api/internal/app"
)

func main() {
	conffile := flag.String("c", "/etc/envatex.yml", "config file")
	username := flag.String("username", "", "admin username")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "both -username and -password are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	created, err := application.CreateOrUpdateAdmin(*username, *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed: %v\n", err)
		os.Exit(1)
	}
	if created {
		fmt.Printf("Admin user %q created.\n", *username)
	} else {
		fmt.Printf("Admin user %q updated (password changed).\n", *username)
	}
}
