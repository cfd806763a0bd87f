package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"hotel/internal/database"
	"hotel/internal/domain"
	"hotel/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// roomEntry is one catalog row; rooms are matched on number.
type roomEntry struct {
	Number        string          `yaml:"number"`
	Name          string          `yaml:"name"`
	Type          models.RoomType `yaml:"type"`
	Description   string          `yaml:"description"`
	Capacity      int             `yaml:"capacity"`
	PricePerNight float64         `yaml:"price_per_night"`
	ImageURL      string          `yaml:"image_url"`
	Amenities     []string        `yaml:"amenities"`
	Available     *bool           `yaml:"available"`
}

type catalog struct {
	Rooms []roomEntry `yaml:"rooms"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		roomsPath = flag.String("rooms", "configs/rooms.yaml", "path to rooms.yaml")
		dbPath    = flag.String("db", "./data/hotel.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*roomsPath)
	if err != nil {
		return fmt.Errorf("read rooms: %w", err)
	}
	var cfg catalog
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse rooms: %w", err)
	}
	if len(cfg.Rooms) == 0 {
		return fmt.Errorf("no rooms in yaml")
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, updated, skipped := 0, 0, 0
	for _, entry := range cfg.Rooms {
		if entry.Number == "" || !entry.Type.Valid() || entry.Capacity < 1 || entry.PricePerNight <= 0 {
			logger.Warn().Str("number", entry.Number).Msg("skipping incomplete room")
			skipped++
			continue
		}
		room := entry.toRoom()

		existing, err := db.GetRoomByNumber(ctx, room.Number)
		if err == nil {
			if _, err = db.UpdateRoom(ctx, existing.ID, entry.toUpdate(room)); err != nil {
				return fmt.Errorf("update %s: %w", room.Number, err)
			}
			updated++
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get %s: %w", room.Number, err)
		}
		if err = db.CreateRoom(ctx, room); err != nil {
			return fmt.Errorf("create %s: %w", room.Number, err)
		}
		created++
	}

	fmt.Printf("done: created=%d updated=%d skipped=%d\n", created, updated, skipped)
	return nil
}

func (e roomEntry) toRoom() *models.Room {
	room := &models.Room{
		Number:        e.Number,
		Name:          e.Name,
		Type:          e.Type,
		Description:   e.Description,
		Capacity:      e.Capacity,
		PricePerNight: e.PricePerNight,
		ImageURL:      e.ImageURL,
		Amenities:     e.Amenities,
		Available:     true,
	}
	if room.ImageURL == "" {
		room.ImageURL = models.DefaultRoomImage
	}
	if room.Amenities == nil {
		room.Amenities = []string{}
	}
	if e.Available != nil {
		room.Available = *e.Available
	}
	return room
}

// toUpdate overwrites every catalog-managed field of an existing room.
func (e roomEntry) toUpdate(room *models.Room) models.RoomUpdate {
	return models.RoomUpdate{
		Name:          &room.Name,
		Type:          &room.Type,
		Description:   &room.Description,
		Capacity:      &room.Capacity,
		PricePerNight: &room.PricePerNight,
		ImageURL:      &room.ImageURL,
		Amenities:     &room.Amenities,
		Available:     &room.Available,
	}
}
