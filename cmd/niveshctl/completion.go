package main

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion. Enable it with
// `COMP_INSTALL=1 niveshctl`.
func completion() *complete.Command {
	global := map[string]complete.Predictor{
		"server":  predict.Something,
		"api-key": predict.Something,
		"plain":   predict.Nothing,
	}
	return &complete.Command{
		Flags: global,
		Sub: map[string]*complete.Command{
			"portfolios": {Flags: map[string]complete.Predictor{
				"owner": predict.Something,
			}},
			"analysis": {Flags: map[string]complete.Predictor{
				"id":  predict.Something,
				"raw": predict.Nothing,
			}},
			"refresh": {Flags: map[string]complete.Predictor{
				"id": predict.Something,
			}},
			"refresh-all":    {},
			"risk-questions": {},
			"ask": {Flags: map[string]complete.Predictor{
				"portfolio": predict.Something,
			}, Args: predict.Something},
			"help":     {Args: predict.Set{"portfolios", "analysis", "refresh", "refresh-all", "risk-questions", "ask"}},
			"flags":    {},
			"commands": {},
		},
	}
}
