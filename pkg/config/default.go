package config

// Default returns the built-in demo model: one measurement node with two
// phase voltages grouped into a dataset with an unbuffered report control
// block. Used by the demo binary when no model file is given.
func Default() *Server {
	return &Server{
		Name: "MySubstation_IED_001",
		LogicalDevices: []LogicalDevice{
			{
				Name: "Protection",
				LogicalNodes: []LogicalNode{
					{
						Name: "MMXU1",
						DataObjects: []DataObject{
							{
								Name: "PhV",
								Attributes: []Attribute{
									{Name: "phsA.cVal.mag.f", Value: 220.0},
									{Name: "phsB.cVal.mag.f", Value: 219.5},
								},
							},
						},
						Datasets: []Dataset{
							{
								Name: "dsMeas",
								Members: []string{
									"PhV.phsA.cVal.mag.f",
									"PhV.phsB.cVal.mag.f",
								},
							},
						},
						Reports: []Report{
							{
								Name:     "urcb01",
								Dataset:  "dsMeas",
								ReportID: "MyIED/Protection/MMXU1$RP$urcb01",
							},
						},
					},
				},
			},
		},
	}
}
