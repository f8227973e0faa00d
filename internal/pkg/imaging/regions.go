package imaging

import "image"

// Region is a connected component of set pixels in a mask.
type Region struct {
	Area   int
	Bounds image.Rectangle
}

// AspectRatio returns width/height of the bounding box.
func (r Region) AspectRatio() float64 {
	h := r.Bounds.Dy()
	if h == 0 {
		return 0
	}
	return float64(r.Bounds.Dx()) / float64(h)
}

// FindRegions labels 4-connected components in the mask and returns one
// Region per component. Cost is O(pixels).
func FindRegions(mask *Mask) []Region {
	visited := make([]bool, len(mask.Bits))
	regions := make([]Region, 0)
	// Reused scan stack, flood fill without recursion
	stack := make([]int, 0, 256)

	for start := range mask.Bits {
		if !mask.Bits[start] || visited[start] {
			continue
		}

		area := 0
		minX, minY := mask.W, mask.H
		maxX, maxY := 0, 0

		stack = stack[:0]
		stack = append(stack, start)
		visited[start] = true

		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			x := idx % mask.W
			y := idx / mask.W
			area++
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}

			if x > 0 {
				push(mask, visited, &stack, idx-1)
			}
			if x < mask.W-1 {
				push(mask, visited, &stack, idx+1)
			}
			if y > 0 {
				push(mask, visited, &stack, idx-mask.W)
			}
			if y < mask.H-1 {
				push(mask, visited, &stack, idx+mask.W)
			}
		}

		regions = append(regions, Region{
			Area:   area,
			Bounds: image.Rect(minX, minY, maxX+1, maxY+1),
		})
	}
	return regions
}

func push(mask *Mask, visited []bool, stack *[]int, idx int) {
	if mask.Bits[idx] && !visited[idx] {
		visited[idx] = true
		*stack = append(*stack, idx)
	}
}
