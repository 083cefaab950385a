package seed

import (
	"database/sql"
	"fmt"

	"stockflow/internal/inventory/ledger"
	"stockflow/internal/repository"
	"stockflow/pkg/metadata"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	username string
	fullname string
	email    string
	role     string
}

type seedLocation struct {
	name      string
	locType   metadata.LocationType
	parentIdx int // index into the location list, -1 for roots
	address   string
}

type seedItem struct {
	name         string
	brand        string
	model        string
	category     string
	minThreshold int
	initialStock int
	tags         []string
	description  string
}

type seedMovement struct {
	itemIdx  int
	movType  metadata.MovementType
	quantity int
	fromIdx  int // location index, -1 for none
	toIdx    int
	userIdx  int
	note     string
}

var users = []seedUser{
	{"quentin", "Quentin Faber", "quentin@stockflow.pro", "admin"},
	{"sophie", "Sophie Martin", "sophie.martin@stockflow.pro", "manager"},
	{"lucas", "Lucas Dubois", "lucas.dubois@stockflow.pro", "viewer"},
}

var locations = []seedLocation{
	{"Central Warehouse Paris", metadata.LocationWarehouse, -1, "12 Rue de Rivoli, 75001 Paris"},
	{"Warehouse Lyon", metadata.LocationWarehouse, -1, "45 Avenue Jean Jaures, 69007 Lyon"},
	{"Audio Storage Zone", metadata.LocationZone, 0, "Paris Warehouse - Wing A"},
	{"Video Storage Zone", metadata.LocationZone, 0, "Paris Warehouse - Wing B"},
	{"Client - TechConf 2026", metadata.LocationEvent, -1, "Palais des Congres, Paris"},
	{"Client - MusicFest Live", metadata.LocationClient, -1, "Zenith de Paris"},
	{"Meeting Room A", metadata.LocationRoom, -1, "Head office - Floor 2"},
}

var items = []seedItem{
	{"Wireless Mic Shure SM58", "Shure", "SM58-LC", "Audio", 5, 12, []string{"mic", "wireless", "vocal"}, "Dynamic cardioid wireless microphone for live vocals and presentations."},
	{"Yamaha Mixing Console", "Yamaha", "MG16XU", "Audio", 2, 4, []string{"console", "mixer"}, "16-channel mixing console with built-in effects and USB interface."},
	{"JBL Active Speaker", "JBL", "EON615", "Audio", 4, 8, []string{"speaker", "pa", "powered"}, "Active 15-inch 1000W speaker, portable and versatile."},
	{"Sony 4K Camera", "Sony", "PXW-Z90", "Video", 3, 5, []string{"camera", "4k", "broadcast"}, "Professional 4K camera with 12x optical zoom and advanced stabilization."},
	{"Epson LED Projector", "Epson", "EB-L200F", "Video", 2, 3, []string{"projector", "laser"}, "Full HD 4500 lumen laser projector, lamp-free."},
	{"LED Moving Head", "ADJ", "Focus Spot 4Z", "Lighting", 6, 10, []string{"moving head", "led", "stage"}, "Motorized LED fixture with 7-40 degree zoom and fast pan/tilt."},
	{"PAR LED 64 Fixture", "Chauvet", "SlimPAR 64 RGBA", "Lighting", 8, 15, []string{"par", "led", "wash"}, "Compact RGBA LED fixture for color washes."},
	{"XLR Cable 10m", "ProCab", "XLR-10", "Cables", 20, 45, []string{"cable", "xlr", "audio"}, "Male/female XLR cable, 10 meters, pro shielding."},
	{"16-Channel Snake", "Sommercable", "SC-ORBIT 240", "Cables", 3, 5, []string{"snake", "stage"}, "16-way XLR snake, 25 meters, with stage box."},
	{"Flight Case Rack 4U", "Thomann", "Rack Case 4U", "Flight Cases", 5, 7, []string{"flight case", "rack"}, "4-unit rack flight case, reinforced for transport."},
}

var movements = []seedMovement{
	{0, metadata.MovementIn, 5, -1, 0, 0, "Supplier delivery - order #2024-156"},
	{1, metadata.MovementIn, 2, -1, 0, 1, "Yamaha service return - repair done"},
	{3, metadata.MovementOut, 2, 0, -1, 2, "Checked out for TechConf 2026"},
	{5, metadata.MovementOut, 4, 0, -1, 2, "Checked out for MusicFest Live - main show"},
	{2, metadata.MovementTransfer, 3, 0, 1, 1, "Stock rebalancing between warehouses"},
	{6, metadata.MovementTransfer, 5, 2, 3, 0, "Storage zone reorganization"},
	{7, metadata.MovementAdjust, 5, -1, -1, 0, "Annual inventory - stock count correction"},
}

// Run populates an empty database with a demo dataset. Stock levels are
// never written directly: every item starts at zero and all stock comes from
// replaying movements through the ledger.
func Run(db *sql.DB, defaultPassword string, log *zap.Logger) error {
	repo := repository.NewRepository(db)

	count, err := repo.GoquDBWrapper.From("users").Count()
	if err != nil {
		return fmt.Errorf("unable to check for existing data: %w", err)
	}
	if count > 0 {
		log.Info("Database already contains users, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("unable to hash seed password: %w", err)
	}

	err = repository.WithTransaction(repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		userIDs, err := insertUsers(tx, string(hash))
		if err != nil {
			return err
		}

		locationIDs, err := insertLocations(tx)
		if err != nil {
			return err
		}

		itemIDs, err := insertItems(tx)
		if err != nil {
			return err
		}

		stocks := make([]int, len(items))
		// Initial stock arrives as IN movements into the main warehouse.
		for idx, item := range items {
			if item.initialStock == 0 {
				continue
			}
			if err := applyMovement(tx, seedMovement{
				itemIdx:  idx,
				movType:  metadata.MovementIn,
				quantity: item.initialStock,
				fromIdx:  -1,
				toIdx:    0,
				userIdx:  0,
				note:     "Initial stock intake",
			}, userIDs, locationIDs, itemIDs, stocks); err != nil {
				return err
			}
		}

		for _, movement := range movements {
			if err := applyMovement(tx, movement, userIDs, locationIDs, itemIDs, stocks); err != nil {
				return err
			}
		}

		return insertComments(tx, userIDs, itemIDs)
	})
	if err != nil {
		return err
	}

	log.Info("Seeded demo dataset",
		zap.Int("users", len(users)),
		zap.Int("locations", len(locations)),
		zap.Int("items", len(items)),
	)

	return nil
}

func insertUsers(tx *goqu.TxDatabase, passwordHash string) ([]int, error) {
	ids := make([]int, 0, len(users))
	for _, user := range users {
		var id int
		query := tx.Insert("users").Rows(goqu.Record{
			"username":      user.username,
			"fullname":      user.fullname,
			"email":         user.email,
			"password_hash": passwordHash,
			"role":          user.role,
		}).Returning("id")
		if _, err := query.Executor().ScanVal(&id); err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", user.username, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func insertLocations(tx *goqu.TxDatabase) ([]int, error) {
	ids := make([]int, 0, len(locations))
	for _, location := range locations {
		record := goqu.Record{
			"name":    location.name,
			"type":    location.locType.String(),
			"address": location.address,
		}
		if location.parentIdx >= 0 {
			record["parent_id"] = ids[location.parentIdx]
		}

		var id int
		if _, err := tx.Insert("locations").Rows(record).Returning("id").Executor().ScanVal(&id); err != nil {
			return nil, fmt.Errorf("failed to seed location %s: %w", location.name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func insertItems(tx *goqu.TxDatabase) ([]int, error) {
	ids := make([]int, 0, len(items))
	for _, item := range items {
		var id int
		query := tx.Insert("items").Rows(goqu.Record{
			"name":                item.name,
			"brand":               item.brand,
			"model":               item.model,
			"category":            item.category,
			"min_stock_threshold": item.minThreshold,
			"tags":                pq.Array(item.tags),
			"description":         item.description,
			"current_stock":       0,
			"status":              metadata.StatusUnavailable.String(),
		}).Returning("id")
		if _, err := query.Executor().ScanVal(&id); err != nil {
			return nil, fmt.Errorf("failed to seed item %s: %w", item.name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func applyMovement(tx *goqu.TxDatabase, movement seedMovement, userIDs, locationIDs, itemIDs []int, stocks []int) error {
	record := goqu.Record{
		"item_id":    itemIDs[movement.itemIdx],
		"type":       movement.movType.String(),
		"quantity":   movement.quantity,
		"created_by": userIDs[movement.userIdx],
		"note":       movement.note,
	}
	if movement.fromIdx >= 0 {
		record["from_location_id"] = locationIDs[movement.fromIdx]
	}
	if movement.toIdx >= 0 {
		record["to_location_id"] = locationIDs[movement.toIdx]
	}

	if _, err := tx.Insert("movements").Rows(record).Executor().Exec(); err != nil {
		return fmt.Errorf("failed to seed movement for item %d: %w", movement.itemIdx, err)
	}

	newStock, newStatus := ledger.Reduce(
		stocks[movement.itemIdx],
		movement.movType,
		movement.quantity,
		items[movement.itemIdx].minThreshold,
	)
	stocks[movement.itemIdx] = newStock

	_, err := tx.Update("items").
		Set(goqu.Record{"current_stock": newStock, "status": newStatus.String()}).
		Where(goqu.Ex{"id": itemIDs[movement.itemIdx]}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to update seeded stock for item %d: %w", movement.itemIdx, err)
	}

	return nil
}

func insertComments(tx *goqu.TxDatabase, userIDs, itemIDs []int) error {
	comments := []goqu.Record{
		{
			"entity_type": metadata.EntityItem.String(),
			"entity_id":   itemIDs[0],
			"text":        "Mics in excellent condition. Install fresh batteries before next checkout.",
			"created_by":  userIDs[2],
			"author_name": users[2].fullname,
		},
		{
			"entity_type": metadata.EntityItem.String(),
			"entity_id":   itemIDs[3],
			"text":        "ATTENTION: one camera has a focus issue. Check before the next rental.",
			"created_by":  userIDs[1],
			"author_name": users[1].fullname,
		},
	}

	for _, record := range comments {
		if _, err := tx.Insert("comments").Rows(record).Executor().Exec(); err != nil {
			return fmt.Errorf("failed to seed comment: %w", err)
		}
	}

	return nil
}
