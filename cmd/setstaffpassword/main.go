package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/config"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/session"
)

func main() {
	password := flag.String("password", "", "New staff password (minimum 8 characters)")
	configPath := flag.String("c", "config.yaml", "config path")
	flag.Parse()

	if *password == "" {
		fmt.Println("Error: password not specified")
		fmt.Println("Usage: setstaffpassword -password=NEW_PASSWORD [-c config.yaml]")
		os.Exit(1)
	}

	conf, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	credentials := session.NewCredentialManager(conf.Auth.CredentialsPath)

	if err := credentials.SetPassword(*password); err != nil {
		fmt.Printf("Failed to set password: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Staff password set successfully")
}
