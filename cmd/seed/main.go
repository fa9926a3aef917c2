package main

import (
	"context"
	"log"
	"os"
	"time"

	"gearbook/internal/database"
	"gearbook/internal/domain"
	"gearbook/internal/modules/numbering"
	"gearbook/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "gearbook.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM documents")
	db.Exec("DELETE FROM reservation_assets")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM kit_items")
	db.Exec("DELETE FROM kits")
	db.Exec("DELETE FROM assets")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM organizations")

	ctx := context.Background()

	orgRepo := repository.NewOrganizationRepository(db)
	userRepo := repository.NewUserRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	kitRepo := repository.NewKitRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	// ================== ORGANIZATION ==================
	log.Println("Creating organization...")
	org := &domain.Organization{Name: "Northlight Productions"}
	if err := orgRepo.Create(ctx, org); err != nil {
		log.Fatal(err)
	}

	// ================== USERS ==================
	log.Println("Creating users...")
	ownerHash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
	owner := &domain.User{
		OrgID:        org.ID,
		Email:        "owner@northlight.example",
		PasswordHash: string(ownerHash),
		Name:         "Nora Lindqvist",
		Role:         domain.RoleOwner,
	}
	if err := userRepo.Create(ctx, owner); err != nil {
		log.Fatal(err)
	}

	memberHash, _ := bcrypt.GenerateFromPassword([]byte("member123"), bcrypt.DefaultCost)
	member := &domain.User{
		OrgID:        org.ID,
		Email:        "tech@northlight.example",
		PasswordHash: string(memberHash),
		Name:         "Jesse Kim",
		Role:         domain.RoleMember,
	}
	if err := userRepo.Create(ctx, member); err != nil {
		log.Fatal(err)
	}

	// ================== ASSETS ==================
	log.Println("Creating assets...")
	assets := []*domain.Asset{
		{OrgID: org.ID, Name: "Sony FX6", Category: "camera", Status: domain.AssetActive, Quantity: 2, Location: "Shelf A1"},
		{OrgID: org.ID, Name: "Canon 24-70mm f/2.8", Category: "lens", Status: domain.AssetActive, Quantity: 3, Location: "Shelf A2"},
		{OrgID: org.ID, Name: "Aputure 600d", Category: "lighting", Status: domain.AssetActive, Quantity: 4, Location: "Shelf B1"},
		{OrgID: org.ID, Name: "Sennheiser MKH 416", Category: "audio", Status: domain.AssetActive, Quantity: 2, Location: "Shelf C1"},
		{OrgID: org.ID, Name: "DJI Ronin 2", Category: "grip", Status: domain.AssetMaintenance, Quantity: 1, Location: "Workshop"},
	}
	for _, a := range assets {
		if err := assetRepo.Create(ctx, a); err != nil {
			log.Fatal(err)
		}
	}

	// ================== KITS ==================
	log.Println("Creating kits...")
	interviewKit := &domain.Kit{
		OrgID:    org.ID,
		Name:     "Interview Kit",
		Category: "production",
		Items: []domain.KitItem{
			{AssetID: assets[0].ID, Quantity: 1},
			{AssetID: assets[1].ID, Quantity: 1},
			{AssetID: assets[2].ID, Quantity: 2},
			{AssetID: assets[3].ID, Quantity: 1},
		},
	}
	if err := kitRepo.Create(ctx, interviewKit); err != nil {
		log.Fatal(err)
	}

	// ================== RESERVATIONS ==================
	log.Println("Creating reservations...")
	today := time.Now().UTC().Truncate(24 * time.Hour)
	res := &domain.Reservation{
		OrgID:     org.ID,
		Title:     "Client interview shoot",
		Project:   "Acme brand film",
		StartDate: today.AddDate(0, 0, 7),
		EndDate:   today.AddDate(0, 0, 9),
		StartTime: "09:00",
		EndTime:   "18:00",
		Location:  "Studio 2",
		Status:    domain.ReservationConfirmed,
		Priority:  domain.PriorityNormal,
		CreatedBy: owner.ID,
		Assets: []domain.ReservationAsset{
			{AssetID: assets[0].ID, Quantity: 1},
			{AssetID: assets[2].ID, Quantity: 2},
		},
	}
	if err := reservationRepo.Create(ctx, res); err != nil {
		log.Fatal(err)
	}

	// ================== DOCUMENTS ==================
	log.Println("Creating documents...")
	allocator := numbering.NewAllocator(documentRepo, 0)
	now := time.Now().UTC()

	invoice := &domain.Document{
		OrgID:        org.ID,
		Kind:         domain.DocumentInvoice,
		CustomerName: "Acme Corp",
		Amount:       1850.00,
		IssueDate:    now,
		Status:       domain.DocumentDraft,
		CreatedBy:    owner.ID,
	}
	if err := allocator.CreateWithNumber(ctx, invoice, now); err != nil {
		log.Fatal(err)
	}

	quotation := &domain.Document{
		OrgID:        org.ID,
		Kind:         domain.DocumentQuotation,
		CustomerName: "Borealis Events",
		Amount:       4200.00,
		IssueDate:    now,
		Status:       domain.DocumentDraft,
		CreatedBy:    owner.ID,
	}
	if err := allocator.CreateWithNumber(ctx, quotation, now); err != nil {
		log.Fatal(err)
	}

	log.Println("Seed completed!")
	log.Println("Test accounts:")
	log.Println("Owner: owner@northlight.example / owner123")
	log.Println("Member: tech@northlight.example / member123")
	log.Printf("Invoice number: %s", invoice.Number)
	log.Printf("Quotation number: %s", quotation.Number)
}
