package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// Generates a bcrypt hash for seeding staff accounts by hand, e.g. when
// resetting the admin password directly in the users table.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/generate_password.go <password> [cost]")
	}

	password := os.Args[1]
	cost := bcrypt.DefaultCost
	if len(os.Args) > 2 {
		c, err := strconv.Atoi(os.Args[2])
		if err != nil || c < bcrypt.MinCost || c > bcrypt.MaxCost {
			log.Fatalf("Invalid cost %q (must be %d-%d)", os.Args[2], bcrypt.MinCost, bcrypt.MaxCost)
		}
		cost = c
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		log.Fatal("Error generating hash:", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		log.Fatal("Hash verification failed:", err)
	}

	fmt.Printf("Hash (cost %d): %s\n", cost, string(hash))
	fmt.Printf("UPDATE users SET password = '%s' WHERE email = 'admin@trosset.local';\n", string(hash))
}
