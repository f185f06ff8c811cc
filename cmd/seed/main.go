package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"fazpramim/internal/config"
	"fazpramim/internal/database"
	"fazpramim/internal/domain"
	"fazpramim/internal/modules/upload"
	"fazpramim/internal/repository"

	"github.com/joho/godotenv"
)

// Seeds a local database with two demo accounts and a request that has
// already been through the whole lifecycle, so the API is explorable
// right after `go run ./cmd/seed`.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db, &upload.Upload{}); err != nil {
		log.Fatal("migrate failed: ", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM chat_messages")
	db.Exec("DELETE FROM service_requests")
	db.Exec("DELETE FROM portfolio_photos")
	db.Exec("DELETE FROM provider_profiles")
	db.Exec("DELETE FROM client_profiles")
	db.Exec("DELETE FROM uploads")
	db.Exec("DELETE FROM users")

	ctx := context.Background()

	clientRepo := repository.NewClientProfileRepository(db)
	providerRepo := repository.NewProviderProfileRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	requestRepo := repository.NewServiceRequestRepository(db)
	chatRepo := repository.NewChatRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	log.Println("Creating accounts...")

	hash, _ := bcrypt.GenerateFromPassword([]byte("senha12345"), bcrypt.DefaultCost)

	clientUser := &domain.User{
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
		Name:         "Ana Souza",
	}
	clientProfile := &domain.ClientProfile{
		FullName: "Ana Souza",
		CPF:      "12345678900",
		Phone:    "+55 81 99999-0001",
		City:     "Recife",
		State:    "PE",
	}
	if err := clientRepo.CreateWithUser(ctx, clientUser, clientProfile); err != nil {
		log.Fatal(err)
	}

	providerUser := &domain.User{
		Email:        "bruno@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleProvider,
		Name:         "Bruno Lima",
	}
	providerProfile := &domain.ProviderProfile{
		FullName:               "Bruno Lima",
		ProfessionalEmail:      "contato@brunolima.com",
		Phone:                  "+55 81 99999-0002",
		ServiceAddress:         "Av. Boa Viagem, 1000",
		City:                   "Recife",
		State:                  "PE",
		TechnicalQualification: "Eletricista residencial e predial",
	}
	if err := providerRepo.CreateWithUser(ctx, providerUser, providerProfile); err != nil {
		log.Fatal(err)
	}

	log.Println("Creating portfolio...")
	for _, p := range []domain.PortfolioPhoto{
		{ProviderID: providerProfile.ID, PhotoURL: "/static/uploads/demo/quadro.jpg", Title: "Troca de quadro de energia"},
		{ProviderID: providerProfile.ID, PhotoURL: "/static/uploads/demo/iluminacao.jpg", Title: "Iluminação de sala"},
	} {
		photo := p
		if err := portfolioRepo.Create(ctx, &photo); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating a completed request with chat and review...")
	desired := time.Now().Add(-72 * time.Hour)
	value := 350.00
	sr := &domain.ServiceRequest{
		ProviderID:      providerProfile.ID,
		ClientID:        clientUser.ID,
		Description:     "Instalar três pontos de tomada na cozinha",
		DesiredDatetime: &desired,
		ProposedValue:   &value,
		Status:          domain.RequestPending,
	}
	if err := requestRepo.Create(ctx, sr); err != nil {
		log.Fatal(err)
	}
	if _, err := requestRepo.UpdateStatus(ctx, sr.ID, domain.RequestPending, domain.RequestAccepted); err != nil {
		log.Fatal(err)
	}

	for _, m := range []domain.ChatMessage{
		{ServiceRequestID: sr.ID, SenderID: clientUser.ID, Content: "Olá! Pode vir na quinta?"},
		{ServiceRequestID: sr.ID, SenderID: providerUser.ID, Content: "Posso sim, chego às 9h."},
	} {
		msg := m
		if err := chatRepo.CreateMessage(ctx, &msg); err != nil {
			log.Fatal(err)
		}
	}

	if _, _, err := requestRepo.SignalCompletion(ctx, sr.ID, domain.PartyClient); err != nil {
		log.Fatal(err)
	}
	if _, _, err := requestRepo.SignalCompletion(ctx, sr.ID, domain.PartyProvider); err != nil {
		log.Fatal(err)
	}

	rec, err := reviewRepo.GetOrCreate(ctx, sr.ID)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := reviewRepo.SetClientReview(ctx, rec.ID, 5, "Trabalho impecável, recomendo!", ""); err != nil {
		log.Fatal(err)
	}
	if _, err := reviewRepo.SetProviderReview(ctx, rec.ID, 5, "Cliente atenciosa, tudo certo."); err != nil {
		log.Fatal(err)
	}

	// a fresh pending request so the accept/reject flow is testable too
	pending := &domain.ServiceRequest{
		ProviderID:  providerProfile.ID,
		ClientID:    clientUser.ID,
		Description: "Revisar fiação do chuveiro",
		Status:      domain.RequestPending,
	}
	if err := requestRepo.Create(ctx, pending); err != nil {
		log.Fatal(err)
	}

	log.Println("Seed complete.")
	log.Println("  client:   ana@example.com / senha12345")
	log.Println("  provider: bruno@example.com / senha12345")
}
