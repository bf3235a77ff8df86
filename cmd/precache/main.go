package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tripplanner/internal/model"
	"tripplanner/internal/tilecache"
)

func main() {
	var configFile string
	var lat, lon float64
	var zooms []int
	var radius, maxTiles int

	rootCmd := &cobra.Command{
		Use:   "precache",
		Short: "Скачать тайлы карты вокруг точки в локальный кэш для офлайн-режима",
		// Main Entry Point
		Run: func(c *cobra.Command, args []string) {
			storage := tilecache.NewDirStorage(viper.GetString("cache.dir"))
			manager := tilecache.NewManager(storage)
			manager.CacheName = viper.GetString("cache.name")

			// Ctrl+C отменяет операцию; частичный результат остается в кэше
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			center := model.Coordinates{Lat: lat, Lon: lon}
			res := manager.PreCacheTiles(ctx, center, tilecache.Options{
				ZoomLevels:  zooms,
				RadiusTiles: radius,
				MaxTiles:    maxTiles,
				Progress: func(done, total int) {
					if done%10 == 0 || done == total {
						log.Printf("Прогресс: %d/%d", done, total)
					}
				},
			})

			if res.Cancelled {
				log.Printf("Операция отменена. Сохранено %d из %d тайлов.", res.Cached, res.Total)
			} else {
				log.Printf("Готово: сохранено %d из %d тайлов (ошибок: %d, ~%d КБ).",
					res.Cached, res.Total, res.Failed, res.EstimatedBytes/1024)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Путь к файлу конфигурации (JSON)")
	rootCmd.Flags().Float64Var(&lat, "lat", 0, "Широта центра")
	rootCmd.Flags().Float64Var(&lon, "lon", 0, "Долгота центра")
	rootCmd.Flags().IntSliceVar(&zooms, "zoom", nil, "Уровни зума (по умолчанию 12-16)")
	rootCmd.Flags().IntVar(&radius, "radius", 0, "Радиус окрестности в тайлах (0 — по зуму)")
	rootCmd.Flags().IntVar(&maxTiles, "max", 0, "Предел числа тайлов (0 — 200)")
	rootCmd.MarkFlagRequired("lat")
	rootCmd.MarkFlagRequired("lon")

	// Default Values
	viper.SetDefault("cache.dir", "./tilecache")
	viper.SetDefault("cache.name", tilecache.DefaultCacheName)

	// Read Configuration File Before Start
	cobra.OnInitialize(func() {
		if configFile == "" {
			return
		}
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			log.Fatalf("Файл конфигурации %s не найден", configFile)
		}
		viper.SetConfigFile(configFile)
		viper.SetConfigType("json")
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("Не удалось прочитать конфигурацию: %v", err)
		}
		log.Printf("Загружена конфигурация: %s", configFile)
	})

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
