// migrate aplica los archivos SQL de ./migrations en orden lexicográfico
// contra la base configurada (mismas variables de entorno que la API).
//
// Uso: go run ./cmd/migrate [ruta/migrations]
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Combustible-api/pkg/config"
)

func main() {
	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := pgx.Connect(ctx, cfg.DB.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer directorio %s: %v\n", dir, err)
		os.Exit(1)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		sql, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer %s: %v\n", name, err)
			os.Exit(1)
		}
		if _, err := conn.Exec(ctx, string(sql)); err != nil {
			fmt.Fprintf(os.Stderr, "Aplicar %s: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("Aplicado %s\n", name)
	}

	fmt.Printf("Migraciones completadas (%d archivos)\n", len(files))
}
