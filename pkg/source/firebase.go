package source

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"github.com/charmbracelet/log"
	"github.com/matst80/slask-menu/pkg/types"
	"google.golang.org/api/option"
)

// FirebaseSource reads a vendor menu from the Realtime Database, stored under
// vendors/<vendor>/menu.
type FirebaseSource struct {
	client *db.Client
	path   string
}

func NewFirebaseSource(ctx context.Context, databaseUrl, credentialsFile, vendor string) (*FirebaseSource, error) {
	opts := make([]option.ClientOption, 0)
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: databaseUrl}, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting database client: %w", err)
	}
	return &FirebaseSource{
		client: client,
		path:   MenuPath(vendor),
	}, nil
}

func MenuPath(vendor string) string {
	return "vendors/" + vendor + "/menu"
}

func (f *FirebaseSource) Load(ctx context.Context) ([]types.MenuItem, error) {
	var raw any
	if err := f.client.NewRef(f.path).Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	items, err := ToMenuItems(raw)
	if err != nil {
		return nil, err
	}
	log.Info("loaded menu from firebase", "path", f.path, "items", len(items))
	return items, nil
}
