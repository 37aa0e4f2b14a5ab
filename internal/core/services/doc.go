// Package services implements the driving port interfaces.
// Services contain the core business logic: diagnosis, cross-market
// comparison, alternatives research, sync orchestration, search,
// scheduling and settings. They orchestrate calls to driven ports
// (adapters) and never touch storage or the network directly.
package services
