package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"greenpass/internal/certificate"
	"greenpass/internal/platform/logger"
	"greenpass/internal/revocation"
	"greenpass/internal/trust"
	"greenpass/internal/validator"
)

var errNotValid = errors.New("certificate is not valid")

type validateOptions struct {
	certPath    string
	rulesPath   string
	keysPath    string
	crlPath     string
	mode        string
	at          string
	failInvalid bool
	verbose     bool
}

func newValidateCmd() *cobra.Command {
	opts := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a decoded certificate",
		Long: `Validate a decoded certificate file and print the verification response as JSON.

The rules file is a JSON array of {name, type, value} rules. The keys file is a
JSON object mapping kid to a PEM or base64 DER signer certificate. The optional
CRL file is a JSON array of revoked certificate identifiers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.certPath, "cert", "", "decoded certificate JSON file")
	f.StringVar(&opts.rulesPath, "rules", "", "validation rules JSON file")
	f.StringVar(&opts.keysPath, "keys", "", "signer certificates JSON file")
	f.StringVar(&opts.crlPath, "crl", "", "revoked identifiers JSON file")
	f.StringVar(&opts.mode, "mode", string(validator.ModeNormal), "scan mode (3G, 2G, BOOSTER, VISITORS, WORK, ENTRY_IT)")
	f.StringVar(&opts.at, "at", "", "evaluate at this RFC 3339 instant instead of now")
	f.BoolVar(&opts.failInvalid, "fail-invalid", false, "exit non-zero unless the result is VALID")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")
	_ = cmd.MarkFlagRequired("cert")
	_ = cmd.MarkFlagRequired("rules")
	_ = cmd.MarkFlagRequired("keys")
	return cmd
}

func runValidate(ctx context.Context, stdout, stderr io.Writer, opts *validateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mode, err := validator.ParseMode(opts.mode)
	if err != nil {
		return err
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.verbose {
		log = logger.NewWithWriter(stderr, "debug")
	}

	cert, err := readCertificate(opts.certPath)
	if err != nil {
		return err
	}

	crl := revocation.NewInMemoryStore()
	if opts.crlPath != "" {
		revoked, err := readStringList(opts.crlPath)
		if err != nil {
			return err
		}
		if err := crl.Apply(ctx, revoked, nil); err != nil {
			return err
		}
	}

	manager := trust.NewManager(crl, trust.WithLogger(log))
	if err := manager.LoadFiles(ctx, opts.rulesPath, opts.keysPath); err != nil {
		return err
	}

	svcOpts := []validator.Option{validator.WithLogger(log)}
	if opts.at != "" {
		at, err := time.Parse(time.RFC3339, opts.at)
		if err != nil {
			return fmt.Errorf("--at: %w", err)
		}
		svcOpts = append(svcOpts, validator.WithClock(func() time.Time { return at }))
	}

	resp, err := validator.New(manager, svcOpts...).Validate(ctx, cert, mode)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return err
	}
	if opts.failInvalid && !resp.Valid {
		return fmt.Errorf("%w: %s", errNotValid, resp.Code)
	}
	return nil
}

func readCertificate(path string) (*certificate.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read certificate: %w", err)
	}
	var c certificate.Certificate
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode certificate %s: %w", path, err)
	}
	return &c, nil
}

func readStringList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read crl: %w", err)
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode crl %s: %w", path, err)
	}
	return ids, nil
}
