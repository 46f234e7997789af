package adaboost

// classGroups maps the labels of a problem onto dense class indices.
type classGroups struct {
	label []int // class index -> label
	count []int
	index []int // instance -> class index
}

func (g *classGroups) nrClass() int {
	return len(g.label)
}

// classOf returns the class index for label, or -1.
func (g *classGroups) classOf(label int) int {
	for k, l := range g.label {
		if l == label {
			return k
		}
	}
	return -1
}

func groupClasses(prob *Problem) *classGroups {
	g := &classGroups{index: make([]int, prob.L)}

	for i := 0; i < prob.L; i++ {
		thisLabel := int(prob.Y[i])
		j := g.classOf(thisLabel)
		if j < 0 {
			j = len(g.label)
			g.label = append(g.label, thisLabel)
			g.count = append(g.count, 0)
		}
		g.count[j]++
		g.index[i] = j
	}

	//
	// Labels are ordered by their first occurrence in the training set.
	// However, for two-class sets with -1/+1 labels and -1 appears first,
	// we swap labels so that class 0 always holds the +1 instances.
	//
	if len(g.label) == 2 && g.label[0] == -1 && g.label[1] == 1 {
		g.label[0], g.label[1] = g.label[1], g.label[0]
		g.count[0], g.count[1] = g.count[1], g.count[0]
		for i := range g.index {
			g.index[i] = 1 - g.index[i]
		}
	}

	return g
}
