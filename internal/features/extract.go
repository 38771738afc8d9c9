package features

import "time"

// UserDoc and GardenDoc are opaque documents as returned by the
// user/garden provider (§6) — the pipeline extracts known keys with
// documented defaults rather than assuming a typed schema.
type UserDoc = map[string]interface{}
type GardenDoc = map[string]interface{}

func getFloat(doc map[string]interface{}, key string, def float64) float64 {
	v, ok := doc[key]
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return def
}

func getBool01(doc map[string]interface{}, key string) float64 {
	v, ok := doc[key]
	if !ok || v == nil {
		return 0
	}
	switch b := v.(type) {
	case bool:
		if b {
			return 1
		}
		return 0
	case string:
		if b != "" {
			return 1
		}
		return 0
	}
	return 0
}

func getString(doc map[string]interface{}, key, def string) string {
	v, ok := doc[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

// categoryBreakdown reads the canonical garden.categoryBreakdown map (counts
// per plant type). SPEC_FULL.md §3.1 fixes this as the only schema read;
// metadata.inputParameters.categoryDistribution is not consulted.
func categoryBreakdown(g GardenDoc) map[string]float64 {
	raw, ok := g["categoryBreakdown"]
	if !ok || raw == nil {
		return nil
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		switch n := v.(type) {
		case float64:
			out[k] = n
		case int:
			out[k] = float64(n)
		}
	}
	return out
}

func orchardArea(g GardenDoc) float64 {
	if dims, ok := g["dimensions"].(map[string]interface{}); ok {
		if total, ok := dims["totalArea"]; ok {
			if f, ok := total.(float64); ok {
				return f
			}
		}
		w := getFloat(dims, "width", 0)
		h := getFloat(dims, "height", 0)
		if w > 0 && h > 0 {
			return w * h
		}
	}
	return 0
}

// ExtractRaw builds the pre-standardization numeric/categorical fields for
// one user plus the gardens they own. Missing numeric fields default to 0;
// no later step replaces them with a column median (§4.4).
func ExtractRaw(userID string, user UserDoc, gardens []GardenDoc) Vector {
	v := Vector{UserID: userID}

	v.Numeric[0] = getFloat(user, "experienceLevel", 0)
	v.Numeric[1] = float64(len(gardens))
	v.Numeric[2] = getBool01(user, "tokenFCM")
	v.Numeric[3] = getBool01(user, "profileImage")

	if created, ok := user["createdAt"].(time.Time); ok {
		v.Numeric[4] = time.Since(created).Hours() / 24
	} else {
		v.Numeric[4] = getFloat(user, "accountAgeDays", 0)
	}

	var (
		sumArea, sumWater, sumMaintenance, sumPlants, sumTimeOfLife, sumStreak, sumDiversity float64
		catTotals                                                                            = map[string]float64{}
		catSum                                                                                float64
		activeCount                                                                           int
	)
	for _, g := range gardens {
		sumArea += orchardArea(g)
		sumWater += getFloat(g, "weeklyWaterLiters", 0)
		sumMaintenance += getFloat(g, "maintenanceMinutes", 0)
		sumPlants += getFloat(g, "plantCount", 0)
		sumTimeOfLife += getFloat(g, "timeOfLifeDays", 0)
		sumStreak += getFloat(g, "streak", 0)
		sumDiversity += getFloat(g, "plantDiversity", 0)
		if active, ok := g["active"].(bool); ok && active {
			activeCount++
		}
		for cat, count := range categoryBreakdown(g) {
			catTotals[cat] += count
			catSum += count
		}
	}

	n := float64(len(gardens))
	if n > 0 {
		v.Numeric[5] = sumArea / n
		v.Numeric[8] = sumPlants / n
		v.Numeric[9] = sumTimeOfLife / n
		v.Numeric[10] = sumStreak / n
		v.Numeric[11] = sumDiversity / n
		v.Numeric[7] = sumMaintenance / n
	}
	v.Numeric[6] = sumWater // summed, not averaged, per §3

	if catSum > 0 {
		v.Numeric[12] = catTotals["vegetable"] / catSum
		v.Numeric[13] = catTotals["medicinal"] / catSum
		v.Numeric[14] = catTotals["ornamental"] / catSum
		v.Numeric[15] = catTotals["aromatic"] / catSum
	}

	if activeCount > 0 {
		v.Numeric[16] = 1
	}

	v.Objective = getString(user, "objective", DefaultObjective)
	v.Latitude = getFloat(user, "latitude", DefaultLatitude)
	v.Longitude = getFloat(user, "longitude", DefaultLongitude)

	return v
}
