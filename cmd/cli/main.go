package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/catalog"
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "add-user":
		cmd := flag.NewFlagSet("add-user", flag.ExitOnError)
		email := cmd.String("email", "", "Email for the new user")
		password := cmd.String("password", "", "Password for the new user")
		admin := cmd.Bool("admin", false, "Grant admin access")
		cmd.Parse(os.Args[2:])
		if *email == "" || *password == "" {
			fmt.Println("email and password are required")
			cmd.PrintDefaults()
			os.Exit(1)
		}
		createUser(*email, *password, *admin)
	case "import":
		cmd := flag.NewFlagSet("import", flag.ExitOnError)
		query := cmd.String("query", "", `Catalog query, e.g. "set.id:base1"`)
		qty := cmd.Int("quantity", 1, "Copies per imported card")
		max := cmd.Int("max", 50, "Maximum cards to import")
		cmd.Parse(os.Args[2:])
		if *query == "" {
			fmt.Println("query is required")
			cmd.PrintDefaults()
			os.Exit(1)
		}
		importCards(*query, *qty, *max)
	case "seed":
		seedCards()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("expected 'add-user', 'import' or 'seed' subcommand")
	os.Exit(1)
}

func openStore() *store.Store {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./poketracker.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// Ensure tables exist if running cli before server
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}
	return db
}

func createUser(email, password string, admin bool) {
	db := openStore()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Username: email,
		Password: string(hashedPassword),
		IsAdmin:  admin,
	}
	if err := db.CreateUser(user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User '%s' created successfully (admin=%v).\n", email, admin)
}

// seedCards stocks a small starter inventory for local development.
func seedCards() {
	db := openStore()

	samples := []struct {
		card models.Card
		qty  int
	}{
		{models.Card{Name: "Pikachu", SetName: "Base Set", CardNumber: "58", Rarity: "Common",
			Price: 3.25, Condition: models.ConditionNearMint}, 4},
		{models.Card{Name: "Charizard", SetName: "Base Set", CardNumber: "4", Rarity: "Rare Holo",
			Price: 249.99, Condition: models.ConditionExcellent,
			SellerNotes: "Light edge wear"}, 1},
		{models.Card{Name: "Blastoise", SetName: "Base Set", CardNumber: "2", Rarity: "Rare Holo",
			Price: 119.99, Condition: models.ConditionNearMint}, 2},
		{models.Card{Name: "Snorlax", SetName: "Jungle", CardNumber: "11", Rarity: "Rare Holo",
			Price: 34.50, Condition: models.ConditionGood}, 3},
		{models.Card{Name: "Eevee", SetName: "Jungle", CardNumber: "51", Rarity: "Common",
			Price: 2.75, Condition: models.ConditionNearMint}, 5},
		{models.Card{Name: "Dragonite", SetName: "Fossil", CardNumber: "4", Rarity: "Rare Holo",
			Price: 89.00, Condition: models.ConditionPlayed,
			SellerNotes: "Scratched holo, priced accordingly"}, 1},
	}

	total := 0
	for _, s := range samples {
		card := s.card
		if err := db.CreateCards(&card, s.qty); err != nil {
			log.Fatalf("Failed to seed %s: %v", card.Name, err)
		}
		total += s.qty
	}

	fmt.Printf("Seeded %d copies across %d cards.\n", total, len(samples))
}

func importCards(query string, quantity, maxCards int) {
	db := openStore()

	client := catalog.NewClient(os.Getenv("CATALOG_API_KEY"))
	if base := os.Getenv("CATALOG_URL"); base != "" {
		client.BaseURL = base
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	apiCards, err := client.SearchCards(ctx, query, 1, maxCards)
	if err != nil {
		log.Fatalf("Catalog search failed: %v", err)
	}

	imported, failed := 0, 0
	for _, a := range apiCards {
		card := catalog.ToCard(a)
		if err := db.CreateCards(&card, quantity); err != nil {
			log.Printf("failed to import %s (%s): %v", a.Name, a.Set.Name, err)
			failed++
			continue
		}
		imported++
	}

	fmt.Printf("Imported %d cards (%d failed) for query %q.\n", imported, failed, query)
}
