package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rrabbani2/GolfMaps/api"
	"github.com/rrabbani2/GolfMaps/external/openweather"
	"github.com/rrabbani2/GolfMaps/external/places"
	"github.com/rrabbani2/GolfMaps/geo"
	"github.com/rrabbani2/GolfMaps/schema"
	"github.com/rrabbani2/GolfMaps/store"
	"github.com/rrabbani2/GolfMaps/weather"
)

func initConfig() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("golfmaps")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("mongo.conn", "mongodb://127.0.0.1:27017/?compressors=disabled")
	viper.SetDefault("mongo.database", "golfmaps")
	viper.SetDefault("weather.cache_size", 1024)

	if viper.GetBool("log.debug") {
		log.SetLevel(log.TraceLevel)
	}
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func connectMongo(ctx context.Context) (store.GolfMapsStore, error) {
	conn := viper.GetString("mongo.conn")
	database := viper.GetString("mongo.database")

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conn))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	if err := schema.NewMongoDBIndexer(conn, database).IndexAll(); err != nil {
		return nil, err
	}

	return store.NewMongoStore(client, database), nil
}

// buildServer wires the API with whichever external collaborators are
// configured. Missing API keys leave the matching endpoints degraded
// instead of failing startup.
func buildServer(mongoStore store.GolfMapsStore) (*api.Server, error) {
	var weatherAPI *openweather.Client
	if key := viper.GetString("openweather.api_key"); key != "" {
		weatherAPI = openweather.New(viper.GetString("openweather.endpoint"), key)
	} else {
		log.WithField("prefix", "main").Warn("openweather api key absent, weather endpoint degraded")
	}

	var placesAPI *places.Client
	if key := viper.GetString("places.api_key"); key != "" {
		client, err := places.New(key)
		if err != nil {
			return nil, err
		}
		placesAPI = client
	} else {
		log.WithField("prefix", "main").Warn("places api key absent, busyness uses defaults only")
	}

	var searcher geo.LocationSearcher
	if endpoint := viper.GetString("nominatim.endpoint"); endpoint != "" {
		searcher = geo.NewNominatimSearcher(endpoint)
	}

	cache := weather.NewCache(viper.GetInt("weather.cache_size"))

	// interface-typed nils must stay nil, not wrap a nil pointer
	var ws api.WeatherSource
	if weatherAPI != nil {
		ws = weatherAPI
	}
	var ps api.PopularitySource
	if placesAPI != nil {
		ps = placesAPI
	}

	return api.NewServer(mongoStore, cache, ws, ps, searcher, viper.GetBool("log.debug")), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	mongoStore, err := connectMongo(cmd.Context())
	if err != nil {
		return err
	}
	defer mongoStore.Close(context.Background())

	server, err := buildServer(mongoStore)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run(viper.GetString("server.addr"))
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case sig := <-sigCh:
		log.WithField("prefix", "main").WithField("signal", sig.String()).Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	cobra.OnInitialize(initConfig)

	root := &cobra.Command{
		Use:   "golfmaps-api",
		Short: "GolfMaps scoring and group coordination API",
		RunE:  runServe,
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE:  runServe,
	})
	root.AddCommand(newImportCoursesCmd())

	if err := root.Execute(); err != nil {
		log.WithField("prefix", "main").WithError(err).Fatal("exited with error")
	}
}
