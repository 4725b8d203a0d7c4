package testing

import (
	"fmt"
	"os"
	"strings"

	d "github.com/invertedv/owid"
	"github.com/invertedv/owid/mem"
	"github.com/invertedv/owid/pipeline"
)

// environment variables:
//   - host ClickHouse/Postgres IP address
//   - user database user
//   - password database password
//   - db Postgres database name
//
// DuckDB needs none of these.

const (
	outTable = "owid_democracy_test"

	pg   = d.PG
	ch   = d.CH
	duck = d.Duck
)

const rawFixture = "entity,code,year,life_expectancy_0,electdem_vdem__estimate_best,owid_region\n" +
	"World,OWID_WRL,2010,70,0.5,N/A\n" +
	"Chad,TCD,2000,50,0.2,Africa\n" +
	"Chad,TCD,2005,,0.2,Africa\n" +
	"Chad,TCD,2005,52,0.25,Africa\n" +
	"\"Korea, South\",KOR,2001,76.5,0.71,Asia\n" +
	"Kosovo,,2019,77.1,0.56,\n"

// dsn returns the connection string for dialect built from the environment, or ""
// if the environment is not set.
func dsn(dialect string) string {
	user := os.Getenv("user")
	host := os.Getenv("host")
	password := os.Getenv("password")
	dbName := os.Getenv("db")

	if host == "" || user == "" {
		return ""
	}

	switch dialect {
	case ch:
		return fmt.Sprintf("clickhouse://%s:%s@%s:9000/default", user, password, host)
	case pg:
		if dbName == "" {
			return ""
		}
		return fmt.Sprintf("postgres://%s:%s@%s:5432/%s", user, password, host, dbName)
	default:
		return ""
	}
}

// loadData returns the transformed fixture.
func loadData() *mem.MemDF {
	df, e := mem.LoadCSV(strings.NewReader(rawFixture))
	if e != nil {
		panic(e)
	}

	if _, e := pipeline.Transform(df, pipeline.Democracy, pipeline.DefaultMinYear); e != nil {
		panic(e)
	}

	return df
}
