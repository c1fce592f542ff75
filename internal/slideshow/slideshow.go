package slideshow

import (
	"bytes"
	"fmt"
	"html/template"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    @import url('https://fonts.googleapis.com/css2?family=Poppins:wght@300;400;600&display=swap');
    body {
      font-family: 'Poppins', sans-serif;
      background-color: #f0f0f0;
      color: #333333;
    }
    .slideshow-container {
      max-width: 900px;
      height: 600px;
      position: relative;
      margin: auto;
      background-color: #ffffff;
      box-shadow: 0 0 20px rgba(0,0,0,0.1);
      border-radius: 10px;
      overflow: hidden;
    }
    .slide {
      display: none;
      position: relative;
      width: 100%;
      height: 100%;
      overflow: hidden;
    }
    .slide-background {
      position: absolute;
      top: 0;
      left: 0;
      width: 100%;
      height: 100%;
      z-index: 1;
    }
    .slide-content {
      position: relative;
      z-index: 2;
      padding: 40px;
      height: 100%;
      box-sizing: border-box;
      overflow-y: auto;
    }
    .title-slide { text-align: center; }
    .title-slide h1 {
      font-size: 3em;
      margin-bottom: 20px;
      color: #2c3e50;
      text-shadow: 1px 1px 2px rgba(0,0,0,0.1);
    }
    .content-slide h1 {
      font-size: 2.5em;
      margin-bottom: 20px;
      color: #2c3e50;
    }
    .slide h2 {
      font-size: 1.8em;
      color: #3498db;
      margin-bottom: 15px;
    }
    .slide ul, .slide ol { margin-left: 25px; margin-bottom: 20px; }
    .slide li { margin-bottom: 10px; line-height: 1.6; }
    .slide p { line-height: 1.6; margin-bottom: 15px; }
    .prev, .next {
      cursor: pointer;
      position: absolute;
      top: 50%;
      width: auto;
      margin-top: -30px;
      padding: 16px;
      color: white;
      font-weight: bold;
      font-size: 20px;
      border-radius: 0 3px 3px 0;
      user-select: none;
      background-color: rgba(0,0,0,0.3);
      transition: 0.3s ease;
      z-index: 3;
    }
    .next { right: 0; border-radius: 3px 0 0 3px; }
    .prev:hover, .next:hover { background-color: rgba(0,0,0,0.8); }
  </style>
</head>
<body>
  <div class="slideshow-container">
    {{.Slides}}
    <a class="prev" onclick="plusSlides(-1)">&#10094;</a>
    <a class="next" onclick="plusSlides(1)">&#10095;</a>
  </div>
  <script>
    var slideIndex = {{.Start}};
    var slides = document.getElementsByClassName("slide");
    showSlides(slideIndex);

    function plusSlides(n) {
      showSlides(slideIndex += n);
    }

    function showSlides(n) {
      if (slides.length === 0) { slideIndex = 0; return; }
      if (n > slides.length) { slideIndex = slides.length; }
      if (n < 1) { slideIndex = 1; }
      for (var i = 0; i < slides.length; i++) {
        slides[i].style.display = "none";
      }
      slides[slideIndex - 1].style.display = "block";
    }
  </script>
</body>
</html>`

var page = template.Must(template.New("slideshow").Parse(pageTemplate))

type pageData struct {
	Title  string
	Slides template.HTML
	Start  int
}

// Render wraps the model's slide markup in the slideshow page. The markup
// is inserted unescaped. start is the 1-based slide shown first and is
// clamped to the number of slides found in the markup.
func Render(slides string, start int) ([]byte, error) {
	pager := NewPager(CountSlides(slides))
	pager.Show(start)

	var buf bytes.Buffer
	err := page.Execute(&buf, pageData{
		Title:  "Presentation",
		Slides: template.HTML(slides),
		Start:  pager.Index(),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering slideshow: %w", err)
	}
	return buf.Bytes(), nil
}
