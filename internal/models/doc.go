// Package models defines the simulation output rendered by mcview.
//
// The simulation runs elsewhere; these types describe what it hands over:
//   - [IntervalRow] : one year of visitor data with its probability and random-number interval (000-999)
//   - [SimulationRow] : one simulation draw with its random number and predicted visitor count
//   - [Results] : both tables plus the final prediction (mean of the predictions, rounded)
//
// Every type carries json, yaml, and toml tags so results can be read from any of those formats.
package models
