package scoring

// Radar axis groups mirror the two charts of the results screen: the 気血水
// balance and the five-organ state. Axis order is fixed for rendering.
var (
	QiBloodFluidAxes = []string{"気虚", "血虚", "水滞", "気滞", "瘀血"}
	FiveOrganAxes    = []string{"肝の不調", "心の不調", "脾の不調", "肺の不調", "腎の不調"}
)

type RadarAxis struct {
	Subject string `json:"subject"`
	Score   int    `json:"score"`
}

type RadarSummary struct {
	QiBloodFluid []RadarAxis `json:"qi_blood_fluid"`
	FiveOrgans   []RadarAxis `json:"five_organs"`
}

// Radar shapes scores into the two fixed axis groups. Axes missing from the
// score map render as zero.
func Radar(scores Scores) RadarSummary {
	return RadarSummary{
		QiBloodFluid: axes(scores, QiBloodFluidAxes),
		FiveOrgans:   axes(scores, FiveOrganAxes),
	}
}

func axes(scores Scores, names []string) []RadarAxis {
	out := make([]RadarAxis, 0, len(names))
	for _, n := range names {
		out = append(out, RadarAxis{Subject: n, Score: scores[n]})
	}
	return out
}
