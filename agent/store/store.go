package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
	historyx "github.com/tanpawarit/krishi-mitra/agent/history"
)

const memoryPath = ":memory:"

var _ contractx.ContextStore = (*SQLiteStore)(nil)

type Config struct {
	Path        string        `split_words:"true" default:"farmer_chatbot.db"`
	BusyTimeout time.Duration `split_words:"true" default:"5s"`
	// HistoryWindow is how many exchanges GetContext returns.
	HistoryWindow int `split_words:"true" default:"10"`
}

// Option customizes SQLiteStore.
type Option func(*SQLiteStore)

// WithClock replaces the clock used for created_at and chat timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) {
		if now != nil {
			s.now = now
		}
	}
}

// SQLiteStore is the ContextStore backed by a single SQLite file.
type SQLiteStore struct {
	db            *bun.DB
	now           func() time.Time
	historyWindow int
}

// Open connects to the database described by cfg and creates missing tables.
func Open(ctx context.Context, cfg Config, opts ...Option) (*SQLiteStore, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, storageErr("open database", err)
	}
	// One connection keeps writes serialized and makes :memory: usable.
	sqldb.SetMaxOpenConns(1)

	window := cfg.HistoryWindow
	if window <= 0 {
		window = historyx.DefaultWindow
	}

	s := &SQLiteStore{
		db:            bun.NewDB(sqldb, sqlitedialect.New()),
		now:           time.Now,
		historyWindow: window,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if err := s.Migrate(ctx); err != nil {
		_ = s.db.Close()
		return nil, err
	}
	return s, nil
}

func buildDSN(cfg Config) (string, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return "", fmt.Errorf("%w: database path is required", contractx.ErrValidation)
	}

	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	pragmas := fmt.Sprintf("_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", busy.Milliseconds())

	if path == memoryPath {
		return "file::memory:?" + pragmas, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", storageErr("create database directory", err)
		}
	}
	return "file:" + path + "?" + pragmas + "&_pragma=journal_mode(WAL)", nil
}

// Migrate creates the farmers, crops and chat_history tables if absent.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().
		Model((*farmerModel)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return storageErr("create farmers table", err)
	}

	if _, err := s.db.NewCreateTable().
		Model((*cropModel)(nil)).
		IfNotExists().
		ForeignKey(`("farmer_id") REFERENCES "farmers" ("id")`).
		Exec(ctx); err != nil {
		return storageErr("create crops table", err)
	}

	if _, err := s.db.NewCreateTable().
		Model((*exchangeModel)(nil)).
		IfNotExists().
		ForeignKey(`("farmer_id") REFERENCES "farmers" ("id")`).
		Exec(ctx); err != nil {
		return storageErr("create chat_history table", err)
	}

	if _, err := s.db.NewCreateIndex().
		Model((*exchangeModel)(nil)).
		Index("idx_chat_history_farmer_timestamp").
		Column("farmer_id", "timestamp").
		IfNotExists().
		Exec(ctx); err != nil {
		return storageErr("create chat_history index", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// UpsertFarmer returns the farmer registered under phoneNumber unchanged, or
// creates one when both name and location are supplied.
func (s *SQLiteStore) UpsertFarmer(ctx context.Context, phoneNumber, name, location string) (*contractx.Farmer, error) {
	phone := strings.TrimSpace(phoneNumber)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone number is required", contractx.ErrValidation)
	}

	existing, err := s.FarmerByPhone(ctx, phone)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, contractx.ErrNotFound) {
		return nil, err
	}

	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	if name == "" || location == "" {
		return nil, fmt.Errorf("%w: phone=%s", contractx.ErrMissingProfileData, phone)
	}

	row := &farmerModel{
		PhoneNumber:       phone,
		Name:              name,
		Location:          location,
		PreferredLanguage: contractx.DefaultLanguage,
		CreatedAt:         s.now().UTC(),
	}
	// A concurrent insert for the same phone wins; both callers reselect it.
	if _, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (phone_number) DO NOTHING").
		Exec(ctx); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, storageErr("insert farmer", err)
	}

	return s.FarmerByPhone(ctx, phone)
}

func (s *SQLiteStore) FarmerByPhone(ctx context.Context, phoneNumber string) (*contractx.Farmer, error) {
	row := new(farmerModel)
	err := s.db.NewSelect().
		Model(row).
		Where("phone_number = ?", strings.TrimSpace(phoneNumber)).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: phone=%s", contractx.ErrNotFound, phoneNumber)
	}
	if err != nil {
		return nil, storageErr("select farmer by phone", err)
	}
	return row.toContract(), nil
}

func (s *SQLiteStore) farmerByID(ctx context.Context, farmerID int64) (*contractx.Farmer, error) {
	row := new(farmerModel)
	err := s.db.NewSelect().
		Model(row).
		Where("id = ?", farmerID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: farmer_id=%d", contractx.ErrNotFound, farmerID)
	}
	if err != nil {
		return nil, storageErr("select farmer", err)
	}
	return row.toContract(), nil
}

// GetContext returns the farmer profile, crops in creation order and the most
// recent exchanges as chronological user/model turns.
func (s *SQLiteStore) GetContext(ctx context.Context, farmerID int64) (*contractx.FarmerContext, error) {
	profile, err := s.farmerByID(ctx, farmerID)
	if err != nil {
		return nil, err
	}

	crops, err := s.Crops(ctx, farmerID)
	if err != nil {
		return nil, err
	}

	recent, err := s.RecentExchanges(ctx, farmerID, s.historyWindow)
	if err != nil {
		return nil, err
	}

	return &contractx.FarmerContext{
		Profile: *profile,
		Crops:   crops,
		History: historyx.ToTurns(recent),
	}, nil
}

func (s *SQLiteStore) Crops(ctx context.Context, farmerID int64) ([]contractx.Crop, error) {
	var rows []cropModel
	if err := s.db.NewSelect().
		Model(&rows).
		Where("farmer_id = ?", farmerID).
		OrderExpr("created_at ASC, id ASC").
		Scan(ctx); err != nil {
		return nil, storageErr("select crops", err)
	}

	crops := make([]contractx.Crop, 0, len(rows))
	for i := range rows {
		crops = append(crops, rows[i].toContract())
	}
	return crops, nil
}

// RecentExchanges returns up to limit of the newest exchanges, oldest first.
func (s *SQLiteStore) RecentExchanges(ctx context.Context, farmerID int64, limit int) ([]contractx.ChatExchange, error) {
	if limit <= 0 {
		return nil, nil
	}

	var rows []exchangeModel
	if err := s.db.NewSelect().
		Model(&rows).
		Where("farmer_id = ?", farmerID).
		OrderExpr("timestamp DESC, id DESC").
		Limit(limit).
		Scan(ctx); err != nil {
		return nil, storageErr("select chat history", err)
	}

	newestFirst := make([]contractx.ChatExchange, 0, len(rows))
	for i := range rows {
		newestFirst = append(newestFirst, rows[i].toContract())
	}
	return historyx.Chronological(newestFirst), nil
}

func (s *SQLiteStore) AppendExchange(ctx context.Context, farmerID int64, userMessage, botResponse string) error {
	row := &exchangeModel{
		FarmerID:    farmerID,
		UserMessage: userMessage,
		BotResponse: botResponse,
		Timestamp:   s.now().UTC(),
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return storageErr("insert chat exchange", err)
	}
	return nil
}

func (s *SQLiteStore) AddCrop(ctx context.Context, farmerID int64, crop contractx.NewCrop) (int64, error) {
	name := strings.TrimSpace(crop.CropName)
	if name == "" {
		return 0, fmt.Errorf("%w: crop name is required", contractx.ErrValidation)
	}

	exists, err := s.db.NewSelect().
		Model((*farmerModel)(nil)).
		Where("id = ?", farmerID).
		Exists(ctx)
	if err != nil {
		return 0, storageErr("check farmer", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: farmer_id=%d", contractx.ErrNotFound, farmerID)
	}

	row := &cropModel{
		FarmerID:            farmerID,
		CropName:            name,
		PlantingDate:        utcPtr(crop.PlantingDate),
		ExpectedHarvestDate: utcPtr(crop.ExpectedHarvestDate),
		AreaAcres:           crop.AreaAcres,
		CreatedAt:           s.now().UTC(),
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return 0, storageErr("insert crop", err)
	}
	return row.ID, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", contractx.ErrStorage, op, err)
}
