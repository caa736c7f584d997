// seed genera el script SQL para poblar el catálogo de módulos vendibles
// y sus sub-características.
//
// Uso: go run ./cmd/seed [ruta/salida.sql]
// Por defecto escribe: scripts/seed_modules.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type moduleSeed struct {
	Type        string
	Name        string
	Price       string
	SubFeatures []string
}

// Catálogo inicial. El módulo basic es el piso de toda orden: el motor lo
// agrega si el comprador no lo pide.
var catalog = []moduleSeed{
	{
		Type:  "basic",
		Name:  "Módulo Básico",
		Price: "5.00",
		SubFeatures: []string{
			"Gestión de usuarios",
			"Panel de la empresa",
			"Soporte por correo",
		},
	},
	{
		Type:  "accounting",
		Name:  "Contabilidad",
		Price: "15.00",
		SubFeatures: []string{
			"Libro diario",
			"Estados financieros",
			"Conciliación bancaria",
		},
	},
	{
		Type:  "hr",
		Name:  "Recursos Humanos",
		Price: "12.00",
		SubFeatures: []string{
			"Nómina",
			"Gestión de vacaciones",
		},
	},
	{
		Type:  "ecommerce",
		Name:  "Comercio Electrónico",
		Price: "20.00",
		SubFeatures: []string{
			"Tienda en línea",
			"Pasarela de pagos",
			"Gestión de catálogo",
		},
	},
	{
		Type:  "pos",
		Name:  "Punto de Venta",
		Price: "18.00",
		SubFeatures: []string{
			"Caja registradora",
			"Cierre de turno",
		},
	},
	{
		Type:  "contracts",
		Name:  "Contratos",
		Price: "10.00",
		SubFeatures: []string{
			"Plantillas de contrato",
			"Firma electrónica",
		},
	},
}

func main() {
	outPath := filepath.Join("scripts", "seed_modules.sql")
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	var b strings.Builder
	b.WriteString("-- Catálogo de módulos vendibles. Generado por cmd/seed.\n")
	b.WriteString("BEGIN;\n\n")
	for _, m := range catalog {
		moduleID := uuid.New().String()
		fmt.Fprintf(&b,
			"INSERT INTO modules (id, type, name, price, created_at, updated_at)\n"+
				"SELECT '%s', '%s', %s, %s, now(), now()\n"+
				"WHERE NOT EXISTS (SELECT 1 FROM modules WHERE type = '%s');\n",
			moduleID, m.Type, quote(m.Name), m.Price, m.Type,
		)
		for _, f := range m.SubFeatures {
			fmt.Fprintf(&b,
				"INSERT INTO module_sub_features (id, module_id, name)\n"+
					"SELECT '%s', id, %s FROM modules WHERE type = '%s'\n"+
					"ON CONFLICT DO NOTHING;\n",
				uuid.New().String(), quote(f), m.Type,
			)
		}
		b.WriteString("\n")
	}
	b.WriteString("COMMIT;\n")

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir script: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Script generado: %s (%d módulos)\n", outPath, len(catalog))
}

// quote escapa comillas simples para SQL.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
