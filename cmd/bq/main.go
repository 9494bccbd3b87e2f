package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/navikt/nada-tablemetadata/pkg/bq"
	"github.com/navikt/nada-tablemetadata/pkg/service"
	"github.com/navikt/nada-tablemetadata/pkg/tablemetadata"
)

var (
	tableKey   = flag.String("key", "", "table key, bigquery://<project>.<dataset>/<table>")
	endpoint   = flag.String("endpoint", "", "bigquery endpoint, only set for emulators")
	enableAuth = flag.Bool("auth", true, "use application default credentials")
	nested     = flag.Bool("nested", true, "include nested columns")
)

type column struct {
	Name     string    `yaml:"name"`
	Type     string    `yaml:"type"`
	Key      string    `yaml:"key"`
	Children []*column `yaml:"children,omitempty"`
}

type table struct {
	Key         string    `yaml:"key"`
	ColumnCount int       `yaml:"column_count"`
	Columns     []*column `yaml:"columns"`
}

func main() {
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if *tableKey == "" {
		log.Fatal().Msg("missing --key")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := bq.NewClient(*endpoint, *enableAuth, log)

	meta, err := client.GetTableMetadata(ctx, *tableKey)
	if err != nil {
		log.Fatal().Err(err).Str("key", *tableKey).Msg("reading table")
	}

	cols := tablemetadata.ProcessColumns(meta.Columns, meta.Key, meta.Database, tablemetadata.Options{
		NestedColumnsEnabled: *nested,
		DeriveTypeMetadata:   *nested,
	})

	out := table{
		Key:         meta.Key,
		ColumnCount: tablemetadata.ColumnCount(cols),
		Columns:     convert(cols),
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)

	if err := enc.Encode(out); err != nil {
		log.Fatal().Err(err).Msg("writing table")
	}
}

func convert(cols []*service.TableColumn) []*column {
	out := make([]*column, 0, len(cols))

	for _, c := range cols {
		out = append(out, &column{
			Name:     c.Name,
			Type:     c.ColType,
			Key:      c.Key,
			Children: convert(c.Children),
		})
	}

	return out
}
