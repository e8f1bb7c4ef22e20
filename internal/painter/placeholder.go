package painter

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// writePlaceholder 生成纯色占位图，供没有配置图片接口时走通全流程
func writePlaceholder(outputPath string, index int) error {
	img := image.NewRGBA(image.Rect(0, 0, imageWidth, imageHeight))

	bg := color.RGBA{R: 73, G: 109, B: 137, A: 255}
	for y := 0; y < imageHeight; y++ {
		for x := 0; x < imageWidth; x++ {
			img.Set(x, y, bg)
		}
	}

	// 左上角一块不同色的标记区分序号
	mark := color.RGBA{R: 255, G: 255, B: 0, A: 255}
	for y := 40; y < 80; y++ {
		for x := 40; x < 40+index*40; x++ {
			img.Set(x, y, mark)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("创建占位图失败: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("编码占位图失败: %w", err)
	}

	return nil
}
