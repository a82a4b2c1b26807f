// Package monitor публикует метрики исполнения задач наружу: периодическое
// логирование (Poller), HTTP endpoints /healthz, /metrics и /ws (Server),
// отправку в Prometheus Pushgateway (Pusher).
//
// Пакет работает только через metrics.Collector и одинаково обслуживает
// активный и неактивный сборщики: для неактивного срез отсутствует.
package monitor
