package export

import (
	"fmt"
	"io"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/rvanmaanen/skillpath/pkg/model"
)

const (
	svgMargin     = 40
	svgRowHeight  = 90
	svgNodeWidth  = 560
	svgNodeHeight = 70
	svgHeader     = 70
)

var difficultyFill = map[model.DifficultyLevel]string{
	model.DifficultyBeginner:     "#1A3D2A",
	model.DifficultyIntermediate: "#1A3344",
	model.DifficultyAdvanced:     "#3D2A1A",
	model.DifficultyExpert:       "#3D1A1A",
}

var difficultyStroke = map[model.DifficultyLevel]string{
	model.DifficultyBeginner:     "#50FA7B",
	model.DifficultyIntermediate: "#8BE9FD",
	model.DifficultyAdvanced:     "#FFB86C",
	model.DifficultyExpert:       "#FF5555",
}

// WriteTimelineSVG renders the roadmap as a vertical timeline to path.
func WriteTimelineSVG(path string, levels []model.RoadmapLevel, title string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()
	return renderTimelineSVG(file, levels, title)
}

func renderTimelineSVG(w io.Writer, levels []model.RoadmapLevel, title string) error {
	width := svgNodeWidth + 2*svgMargin
	height := svgHeader + len(levels)*svgRowHeight + svgMargin

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#282A36")
	canvas.Text(svgMargin, 44, title, "fill:#F8F8F2;font-size:22px;font-family:monospace;font-weight:bold")

	// spine connecting the level nodes
	if len(levels) > 1 {
		x := svgMargin + 14
		y1 := svgHeader + svgNodeHeight/2
		y2 := svgHeader + (len(levels)-1)*svgRowHeight + svgNodeHeight/2
		canvas.Line(x, y1, x, y2, "stroke:#44475A;stroke-width:3")
	}

	for i, lv := range levels {
		y := svgHeader + i*svgRowHeight
		x := svgMargin + 30

		fill := difficultyFill[lv.DifficultyLevel]
		stroke := difficultyStroke[lv.DifficultyLevel]
		if fill == "" {
			fill, stroke = "#363949", "#6272A4"
		}

		canvas.Circle(svgMargin+14, y+svgNodeHeight/2, 8,
			fmt.Sprintf("fill:%s;stroke:#282A36;stroke-width:2", stroke))

		canvas.Roundrect(x, y, svgNodeWidth-30, svgNodeHeight, 8, 8,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5", fill, stroke))
		canvas.Text(x+14, y+26, fmt.Sprintf("Level %d: %s", lv.LevelNumber, lv.Title),
			"fill:#F8F8F2;font-size:15px;font-family:monospace;font-weight:bold")
		canvas.Text(x+14, y+48, fmt.Sprintf("%s · ~%d months", lv.DifficultyLevel.Label(), lv.EstimatedDurationMonths),
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", stroke))
	}

	canvas.End()
	return nil
}
