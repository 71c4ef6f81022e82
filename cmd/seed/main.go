// Command seed resets the marketplace collections and loads a demo taxonomy,
// an admin account and a set of verified professionals with published listings.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"slices"
	"time"

	"marketplace/config"
	"marketplace/database"
	"marketplace/database/repository"
	"marketplace/models"
	"marketplace/services/admin"
	"marketplace/services/user"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

type seedSub struct {
	name     string
	children []string
}

type seedCategory struct {
	name string
	subs []seedSub
}

type seedSector struct {
	name       string
	icon       string
	categories []seedCategory
}

var tree = []seedSector{
	{"Home & Garden", "home", []seedCategory{
		{"Plumbing", []seedSub{{"Pipes & Drains", []string{"Leak Repair", "Drain Unblocking"}}, {"Boilers", nil}}},
		{"Cleaning", []seedSub{{"Deep Cleaning", nil}, {"End of Tenancy", nil}}},
		{"Landscaping", []seedSub{{"Lawn Care", nil}, {"Tree Surgery", nil}}},
	}},
	{"Business", "briefcase", []seedCategory{
		{"Accounting", []seedSub{{"Bookkeeping", nil}, {"Tax Returns", []string{"Personal", "Corporate"}}}},
		{"Legal", []seedSub{{"Contracts", nil}, {"Company Formation", nil}}},
	}},
	{"Creative", "palette", []seedCategory{
		{"Design", []seedSub{{"Logo Design", nil}, {"Web Design", nil}}},
		{"Photography", []seedSub{{"Events", nil}, {"Product", nil}}},
	}},
}

var collections = []string{
	"sectors", "service_categories", "service_subcategories",
	"users", "professionals", "service_listings", "verification_documents",
}

// leaf is a subcategory listings can be attached to.
type leaf struct {
	sectorID, categoryID, subID, name string
}

func seedTaxonomy(ctx context.Context, repos *repository.Repositories) []leaf {
	var leaves []leaf
	now := time.Now()
	for i, s := range tree {
		sector := &models.Sector{ID: uuid.NewString(), Name: s.name, Slug: admin.Slugify(s.name), Icon: s.icon, SortOrder: i, CreatedAt: now, UpdatedAt: now}
		if err := repos.Taxonomy.CreateSector(ctx, sector); err != nil {
			log.Fatalf("Failed to insert sector %s: %v", s.name, err)
		}
		for j, c := range s.categories {
			cat := &models.ServiceCategory{ID: uuid.NewString(), SectorID: sector.ID, Name: c.name, Slug: admin.Slugify(c.name), SortOrder: j, CreatedAt: now, UpdatedAt: now}
			if err := repos.Taxonomy.CreateCategory(ctx, cat); err != nil {
				log.Fatalf("Failed to insert category %s: %v", c.name, err)
			}
			for k, sub := range c.subs {
				parent := &models.ServiceSubCategory{ID: uuid.NewString(), CategoryID: cat.ID, Name: sub.name, Slug: admin.Slugify(sub.name), SortOrder: k, CreatedAt: now, UpdatedAt: now}
				if err := repos.Taxonomy.CreateSubCategory(ctx, parent); err != nil {
					log.Fatalf("Failed to insert subcategory %s: %v", sub.name, err)
				}
				leaves = append(leaves, leaf{sector.ID, cat.ID, parent.ID, sub.name})
				for m, child := range sub.children {
					sc := &models.ServiceSubCategory{ID: uuid.NewString(), CategoryID: cat.ID, ParentID: parent.ID, Name: child, Slug: admin.Slugify(child), SortOrder: m, CreatedAt: now, UpdatedAt: now}
					if err := repos.Taxonomy.CreateSubCategory(ctx, sc); err != nil {
						log.Fatalf("Failed to insert subcategory %s: %v", child, err)
					}
					leaves = append(leaves, leaf{sector.ID, cat.ID, sc.ID, child})
				}
			}
		}
	}
	return leaves
}

func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.Database()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	for _, name := range collections {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s: %v", name, err)
		}
	}
	repos := repository.NewRepositories(db)
	leaves := seedTaxonomy(ctx, repos)

	const pass = "$Password1234"
	hashed, err := user.HashPassword(pass)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	now := time.Now()

	adminUser := &models.User{ID: uuid.NewString(), Name: "Admin", Email: "admin@example.com", PasswordHash: hashed,
		Role: models.RoleAdmin, Status: models.UserActive, CreatedAt: now, UpdatedAt: now}
	if err := repos.Users.Create(ctx, adminUser); err != nil {
		log.Fatalf("Failed to insert admin: %v", err)
	}

	const professionals = 12
	listings := 0
	for i := 1; i <= professionals; i++ {
		u := &models.User{ID: uuid.NewString(), Name: fmt.Sprintf("Professional %d", i),
			Email: fmt.Sprintf("pro_%d@example.com", i), PasswordHash: hashed,
			Role: models.RoleProfessional, Status: models.UserActive, CreatedAt: now, UpdatedAt: now}
		if err := repos.Users.Create(ctx, u); err != nil {
			log.Fatalf("Failed to insert user %s: %v", u.Email, err)
		}

		verified := i%3 != 0
		status := models.VerificationVerified
		if !verified {
			status = models.VerificationUnverified
		}
		pro := &models.Professional{ID: uuid.NewString(), UserID: u.ID, DisplayName: u.Name,
			Headline: "Reliable and experienced", Location: "Sample City", Languages: []string{"English"},
			HourlyRate: float64(20 + rand.IntN(60)), Verified: verified, VerificationStatus: status,
			CreatedAt: now, UpdatedAt: now}

		// Each professional covers three random leaves of the tree.
		for n := 0; n < 3; n++ {
			lf := leaves[rand.IntN(len(leaves))]
			base := float64(15 + rand.IntN(150))
			published := now.Add(-time.Duration(rand.IntN(30*24)) * time.Hour)
			l := &models.ServiceListing{
				ID:               uuid.NewString(),
				ProfessionalID:   pro.ID,
				ProfessionalName: pro.DisplayName,
				Title:            fmt.Sprintf("%s by %s", lf.name, pro.DisplayName),
				Description:      fmt.Sprintf("Professional %s service with guaranteed quality.", lf.name),
				SectorID:         lf.sectorID,
				CategoryID:       lf.categoryID,
				SubCategoryID:    lf.subID,
				Packages: []models.ServicePackage{
					{Name: "Basic", Price: base, DeliveryDays: 3 + rand.IntN(5)},
					{Name: "Standard", Price: base * 1.8, DeliveryDays: 2 + rand.IntN(3)},
					{Name: "Premium", Price: base * 3, DeliveryDays: 1 + rand.IntN(2)},
				},
				Currency:    "USD",
				Tags:        []string{admin.Slugify(lf.name)},
				Location:    pro.Location,
				Rating:      float64(30+rand.IntN(21)) / 10,
				ReviewCount: rand.IntN(200),
				Verified:    verified,
				Status:      models.ListingPublished,
				CreatedAt:   published,
				UpdatedAt:   published,
				PublishedAt: &published,
			}
			l.StartingPrice = models.MinPackagePrice(l.Packages)
			if err := repos.Listings.Create(ctx, l); err != nil {
				log.Fatalf("Failed to insert listing: %v", err)
			}
			if !slices.Contains(pro.SectorIDs, lf.sectorID) {
				pro.SectorIDs = append(pro.SectorIDs, lf.sectorID)
			}
			listings++
		}
		if err := repos.Professionals.Create(ctx, pro); err != nil {
			log.Fatalf("Failed to insert professional %s: %v", pro.DisplayName, err)
		}
	}

	fmt.Printf("Seeded %d taxonomy leaves, %d professionals and %d listings (password %q)\n",
		len(leaves), professionals, listings, pass)
}
