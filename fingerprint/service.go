package fingerprint

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warrantyseal/warrantyseal/canonical"
	"github.com/warrantyseal/warrantyseal/compare"
	"github.com/warrantyseal/warrantyseal/crypto"
	"github.com/warrantyseal/warrantyseal/envelope"
	"github.com/warrantyseal/warrantyseal/hardware"
	"github.com/warrantyseal/warrantyseal/keys"
)

const purchaseDateLayout = "2006-01-02"

// Service runs the fingerprint lifecycle operations against injected
// hardware and key providers.
type Service struct {
	cfg  Config
	hw   hardware.Source
	keys keys.Store
	log  *zap.Logger

	now       func() time.Time
	newID     func() string
	installer func() string
}

// NewService creates a Service. hw and ks must not be nil.
func NewService(cfg Config, hw hardware.Source, ks keys.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		cfg:       cfg,
		hw:        hw,
		keys:      ks,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
		installer: currentUser,
	}
}

// Create collects a hardware snapshot, binds it to the buyer's warranty
// metadata, signs the canonical payload and writes the envelope to
// req.OutputPath, overwriting any existing fingerprint there.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*envelope.Envelope, error) {
	purchase, err := time.Parse(purchaseDateLayout, req.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: purchase date %q is not a valid YYYY-MM-DD date", ErrValidation, req.PurchaseDate)
	}
	if req.WarrantyDays < 0 {
		return nil, fmt.Errorf("%w: warranty days must not be negative", ErrValidation)
	}

	privateKey, err := s.keys.PrivateKey(req.PrivateKeyPath)
	if err != nil {
		return nil, err
	}

	snap, err := s.hw.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect hardware snapshot: %w", err)
	}

	payload := envelope.Payload{
		Meta: envelope.Meta{
			App:           s.cfg.AppName,
			FingerprintID: s.newID(),
			CreatedAt:     s.now().UTC().Format(hardware.TimestampLayout),
			Installer:     s.installer(),
		},
		Buyer: envelope.Buyer{
			Name:         req.BuyerName,
			PurchaseDate: purchase.Format(purchaseDateLayout),
			WarrantyDays: req.WarrantyDays,
			// Calendar arithmetic in UTC: the purchase date parses as UTC
			// midnight, so adding days never crosses a timezone boundary.
			WarrantyExpires: purchase.AddDate(0, 0, req.WarrantyDays).Format(hardware.TimestampLayout),
		},
		Parts:            s.loadParts(req.PartsFile),
		HardwareSnapshot: *snap,
	}

	canonicalBytes, err := canonical.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize payload: %w", err)
	}

	signature, err := crypto.Sign(privateKey, canonicalBytes)
	if err != nil {
		return nil, err
	}

	env, err := envelope.New(s.cfg.SignerLabel, canonicalBytes, signature)
	if err != nil {
		return nil, err
	}

	if err := s.write(env, req.OutputPath); err != nil {
		return nil, err
	}

	s.log.Info("fingerprint created",
		zap.String("path", req.OutputPath),
		zap.String("buyer", req.BuyerName))
	return env, nil
}

// Show loads and returns the stored envelope verbatim, with no
// cryptographic checks.
func (s *Service) Show(path string) (*envelope.Envelope, error) {
	return s.load(path)
}

// Verify loads the envelope, checks its signature over the
// re-canonicalized payload, and compares the stored hardware snapshot
// against a freshly collected one. Both results are always computed.
func (s *Service) Verify(ctx context.Context, path, publicKeyPath string) (*VerifyResult, error) {
	env, err := s.load(path)
	if err != nil {
		return nil, err
	}

	publicKey, err := s.keys.PublicKey(publicKeyPath)
	if err != nil {
		return nil, err
	}

	signedBytes, err := canonical.Transform(env.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", envelope.ErrFormat, err)
	}

	valid, err := crypto.Verify(publicKey, signedBytes, env.Signature)
	if err != nil {
		return nil, err
	}

	payload, err := env.DecodePayload()
	if err != nil {
		return nil, err
	}

	current, err := s.hw.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect hardware snapshot: %w", err)
	}

	mismatches := compare.Snapshots(&payload.HardwareSnapshot, current)
	if mismatches == nil {
		mismatches = []compare.Mismatch{}
	}

	return &VerifyResult{
		SignatureValid: valid,
		Mismatches:     mismatches,
		Buyer:          payload.Buyer,
	}, nil
}

func (s *Service) load(path string) (*envelope.Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read fingerprint file: %w", err)
	}
	return envelope.Unmarshal(data)
}

func (s *Service) write(env *envelope.Envelope, path string) error {
	data, err := env.Marshal()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Owner/group read-write, no world access. The explicit chmod undoes
	// whatever the process umask stripped on creation.
	if err := os.WriteFile(path, data, 0o660); err != nil {
		return fmt.Errorf("failed to write fingerprint file: %w", err)
	}
	if err := os.Chmod(path, 0o660); err != nil {
		return fmt.Errorf("failed to set fingerprint file permissions: %w", err)
	}
	return nil
}

// loadParts reads the optional parts file. A missing or malformed file
// degrades parts to null with a warning, never a failure.
func (s *Service) loadParts(path string) json.RawMessage {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Warn("parts file unreadable, storing null parts",
			zap.String("path", path), zap.Error(err))
		return nil
	}
	if !json.Valid(data) {
		s.log.Warn("parts file is not valid JSON, storing null parts",
			zap.String("path", path))
		return nil
	}
	return json.RawMessage(data)
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if v := os.Getenv("USER"); v != "" {
		return v
	}
	return "unknown"
}
