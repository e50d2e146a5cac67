//
// Copyright 2026 AMAKI France
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package observability

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/amaki-france/adherents/configuration"
)

const namespace = "amaki"

func Make(cfg *configuration.Configuration) *Observability {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if cfg.Log.Format == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.WithField("level", cfg.Log.Level).Warn("unknown log level, info is used")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return MakeWithLogger(log)
}

func MakeWithLogger(log *logrus.Logger) *Observability {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Observability{
		log:        log,
		metrics:    registry,
		counters:   make(map[string]prometheus.Counter),
		counterVec: make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]prometheus.Gauge),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

type Observability struct {
	log     *logrus.Logger
	metrics *prometheus.Registry

	mu         sync.Mutex
	counters   map[string]prometheus.Counter
	counterVec map[string]*prometheus.CounterVec
	gauges     map[string]prometheus.Gauge
	histograms map[string]*prometheus.HistogramVec
}

func (o *Observability) Log() *logrus.Logger {
	return o.log
}

func (o *Observability) Metrics() *prometheus.Registry {
	return o.metrics
}

func (o *Observability) Counter(opts prometheus.CounterOpts) prometheus.Counter {
	o.mu.Lock()
	defer o.mu.Unlock()

	opts.Namespace = namespace
	c, ok := o.counters[opts.Name]
	if ok {
		return c
	}
	c = prometheus.NewCounter(opts)
	if err := o.metrics.Register(c); err != nil {
		o.log.WithField("metric_collector", opts.Name).
			Errorf("failed to register metric")
		return c
	}
	o.counters[opts.Name] = c
	return c
}

func (o *Observability) CounterVec(opts prometheus.CounterOpts, labels ...string) *prometheus.CounterVec {
	o.mu.Lock()
	defer o.mu.Unlock()

	opts.Namespace = namespace
	c, ok := o.counterVec[opts.Name]
	if ok {
		return c
	}
	c = prometheus.NewCounterVec(opts, labels)
	if err := o.metrics.Register(c); err != nil {
		o.log.WithField("metric_collector", opts.Name).
			Errorf("failed to register metric")
		return c
	}
	o.counterVec[opts.Name] = c
	return c
}

func (o *Observability) Gauge(opts prometheus.GaugeOpts) prometheus.Gauge {
	o.mu.Lock()
	defer o.mu.Unlock()

	opts.Namespace = namespace
	g, ok := o.gauges[opts.Name]
	if ok {
		return g
	}
	g = prometheus.NewGauge(opts)
	if err := o.metrics.Register(g); err != nil {
		o.log.WithField("metric_collector", opts.Name).
			Errorf("failed to register metric")
		return g
	}
	o.gauges[opts.Name] = g
	return g
}

func (o *Observability) Histogram(opts prometheus.HistogramOpts, labels ...string) *prometheus.HistogramVec {
	o.mu.Lock()
	defer o.mu.Unlock()

	opts.Namespace = namespace
	h, ok := o.histograms[opts.Name]
	if ok {
		return h
	}
	h = prometheus.NewHistogramVec(opts, labels)
	if err := o.metrics.Register(h); err != nil {
		o.log.WithField("metric_collector", opts.Name).
			Errorf("failed to register metric")
		return h
	}
	o.histograms[opts.Name] = h
	return h
}

// MakeLedgerMetrics fills one counter per field, named after the field and the action.
func MakeLedgerMetrics(obs *Observability, action string) *LedgerMetrics {
	counters := &LedgerMetrics{}
	v := reflect.ValueOf(counters).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := strings.ToLower(t.Field(i).Name)
		name := fmt.Sprintf("%s_%s_total", field, action)
		help := fmt.Sprintf("Number of %s %s.", field, action)
		collector := obs.Counter(prometheus.CounterOpts{
			Name: name,
			Help: help,
		})
		v.Field(i).Set(reflect.ValueOf(collector))
	}
	return counters
}

type LedgerMetrics struct {
	Paiements   prometheus.Counter
	Avoirs      prometheus.Counter
	Cotisations prometheus.Counter
	Dettes      prometheus.Counter
	Relances    prometheus.Counter
}
