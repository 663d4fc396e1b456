// Package metrics holds Prometheus instruments that are used across the
// storefront.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	IndexBuildsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "index_builds_total",
			Help: "Cumulative number of reverse-index builds.",
		})

	IndexPaths = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "index_paths",
			Help: "Distinct filter paths in the current reverse index.",
		})

	PagesGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pages_generated_total",
			Help: "Cumulative number of listing pages generated.",
		})

	ProductFetchTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "product_fetch_total",
			Help: "Cumulative number of product list fetch attempts.",
		})

	ProductFetchErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "product_fetch_errors_total",
			Help: "Cumulative number of failed product list fetches.",
		})

	ProductCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "product_cache_hits_total",
			Help: "Cumulative number of fresh product cache reads.",
		})

	ProductCacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "product_cache_misses_total",
			Help: "Cumulative number of stale or empty product cache reads.",
		})

	CartsReconciledTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "carts_reconciled_total",
			Help: "Cumulative number of completed cart reconciliation passes.",
		})

	CartItemsRemovedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_items_removed_total",
			Help: "Cumulative number of cart items removed as missing or out of stock.",
		})

	CartPriceUpdatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_price_updates_total",
			Help: "Cumulative number of passes that corrected unit prices from the API.",
		})

	RedirectHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "redirect_hits_total",
			Help: "Cumulative number of requests answered by the redirect table.",
		})

	HTTPRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Cumulative number of HTTP requests served.",
		})

	BotRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_requests_total",
			Help: "Cumulative number of requests whose user agent matched a crawler.",
		})

	NotifySentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notify_sent_total",
			Help: "Cumulative number of diagnostic events delivered.",
		})

	NotifyErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notify_errors_total",
			Help: "Cumulative number of diagnostic events dropped on delivery failure.",
		})
)

func init() {
	prometheus.MustRegister(
		IndexBuildsTotal,
		IndexPaths,
		PagesGeneratedTotal,
		ProductFetchTotal,
		ProductFetchErrorsTotal,
		ProductCacheHitsTotal,
		ProductCacheMissesTotal,
		CartsReconciledTotal,
		CartItemsRemovedTotal,
		CartPriceUpdatesTotal,
		RedirectHitsTotal,
		HTTPRequestsTotal,
		BotRequestsTotal,
		NotifySentTotal,
		NotifyErrorsTotal,
	)
}
